package config

// ModuleFile represents the structure of a module definition file.
type ModuleFile struct {
	Name            string         `yaml:"name"`
	RebuildStrategy string         `yaml:"rebuild_strategy"`
	Components      []ComponentDTO `yaml:"components"`
}

// ComponentDTO represents a component definition in a module file.
type ComponentDTO struct {
	Package string  `yaml:"package"`
	SCMURL  string  `yaml:"scm_url"`
	Batch   int     `yaml:"batch"`
	Weight  float64 `yaml:"weight"`
}
