package config

var presets = map[string]*Config{}

func init() {
	classic := DefaultConfig()
	presets["classic"] = classic

	freefall := DefaultConfig()
	freefall.Jump.SpringConstant = 0
	presets["freefall"] = freefall

	stiff := DefaultConfig()
	stiff.Jump.SpringConstant = 100
	stiff.Jump.CordLength = 15
	presets["stiff"] = stiff

	vacuum := DefaultConfig()
	vacuum.Jump.AirDensity = 0
	vacuum.Jump.TerminalVelocity = 0
	presets["vacuum"] = vacuum
}

func GetPreset(name string) *Config {
	return presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}
