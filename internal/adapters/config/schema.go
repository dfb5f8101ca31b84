package config

// descriptorDTO mirrors the structured descriptor encoding.
type descriptorDTO struct {
	Schema     string            `yaml:"schema"`
	Kernel     string            `yaml:"kernel"`
	Extensions bool              `yaml:"extensions"`
	Build      buildDTO          `yaml:"build"`
	Tests      testsDTO          `yaml:"tests"`
	Versions   map[string]string `yaml:"versions"`
}

// buildDTO is the build section of the structured format.
type buildDTO struct {
	Source         string   `yaml:"source"`
	Binary         string   `yaml:"binary"`
	MakeMin        string   `yaml:"makeMin"`
	BootstrapMin   string   `yaml:"bootstrapMin"`
	Dir            string   `yaml:"dir"`
	ConfigureFlags string   `yaml:"configureFlags"`
	CompilerFlags  string   `yaml:"compilerFlags"`
	Command        []string `yaml:"command"`
}

// testsDTO is the tests section of the structured format. Pass and fail
// default to "pass" and "fail" when a directory is declared.
type testsDTO struct {
	Dir  string `yaml:"dir"`
	Pass string `yaml:"pass"`
	Fail string `yaml:"fail"`
}
