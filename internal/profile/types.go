package profile

// Pause-on-exit policy values.
const (
	PauseAuto   = "auto"   // pause only on Windows
	PauseAlways = "always" // pause on every platform
	PauseNever  = "never"  // never pause
)

// Profile is a declarative launch configuration.
type Profile struct {
	App          App          `yaml:"app" json:"app"`
	Python       Python       `yaml:"python,omitempty" json:"python,omitempty"`
	Requirements Requirements `yaml:"requirements,omitempty" json:"requirements,omitempty"`
	// PauseOnExit is one of the Pause* constants. Empty means PauseAuto.
	PauseOnExit string `yaml:"pause_on_exit,omitempty" json:"pause_on_exit,omitempty"`
}

// App identifies the application the host should serve.
type App struct {
	// Entrypoint is the path to the app's main file, relative to the profile.
	Entrypoint string `yaml:"entrypoint" json:"entrypoint"`
	// Port is the TCP port passed to the host. Zero means the default.
	Port int `yaml:"port,omitempty" json:"port,omitempty"`
}

// Python constrains the interpreter used for probing and launching.
type Python struct {
	// Interpreter overrides interpreter discovery (name or absolute path).
	Interpreter string `yaml:"interpreter,omitempty" json:"interpreter,omitempty"`
	// MinVersion is the minimum interpreter version, e.g. "3.8.0".
	MinVersion string `yaml:"min_version,omitempty" json:"min_version,omitempty"`
}

// Requirements configures the dependency-installation step.
type Requirements struct {
	// File is the requirements manifest path, relative to the profile.
	File string `yaml:"file,omitempty" json:"file,omitempty"`
	// AutoInstall controls whether a failed probe triggers installation.
	// Nil means true.
	AutoInstall *bool `yaml:"auto_install,omitempty" json:"auto_install,omitempty"`
	// Probe is the library whose importability gates installation.
	// Empty means the host library (streamlit).
	Probe string `yaml:"probe,omitempty" json:"probe,omitempty"`
}

// ShouldAutoInstall resolves the AutoInstall default.
func (r Requirements) ShouldAutoInstall() bool {
	return r.AutoInstall == nil || *r.AutoInstall
}
