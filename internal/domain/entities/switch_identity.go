package entities

// SwitchIdentity names one switch of the fleet for a single generation run.
type SwitchIdentity struct {
	Index        int    `yaml:"index" json:"index"`
	Hostname     string `yaml:"hostname" json:"hostname"`
	ManagementIP string `yaml:"management_ip" json:"management_ip"`
}
