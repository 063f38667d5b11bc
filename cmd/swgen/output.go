package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/carlosrabelo/swgen/internal/domain/entities"
	"github.com/carlosrabelo/swgen/internal/platform/ios"
)

const (
	formatText = "text"
	formatYAML = "yaml"
	formatJSON = "json"
)

// switchView is the structured rendering of one generated document.
type switchView struct {
	Index        int        `yaml:"index" json:"index"`
	Hostname     string     `yaml:"hostname" json:"hostname"`
	ManagementIP string     `yaml:"management_ip" json:"management_ip"`
	Ports        []portView `yaml:"ports" json:"ports"`
	Config       []string   `yaml:"config" json:"config"`
}

type portView struct {
	Interface  string `yaml:"interface" json:"interface"`
	Role       string `yaml:"role" json:"role"`
	Vlan       int    `yaml:"vlan,omitempty" json:"vlan,omitempty"`
	NativeVlan int    `yaml:"native_vlan,omitempty" json:"native_vlan,omitempty"`
	Allowed    string `yaml:"allowed,omitempty" json:"allowed,omitempty"`
}

func checkFormat(format string) error {
	switch format {
	case formatText, formatYAML, formatJSON:
		return nil
	default:
		return fmt.Errorf("format %s is invalid, must be 'text', 'yaml' or 'json'", format)
	}
}

func newSwitchView(doc *entities.ConfigDocument) switchView {
	view := switchView{
		Index:        doc.Identity.Index,
		Hostname:     doc.Identity.Hostname,
		ManagementIP: doc.Identity.ManagementIP,
		Config:       doc.Lines(),
	}
	for _, p := range doc.Ports {
		pv := portView{Interface: p.InterfaceName, Role: string(p.Role)}
		switch p.Role {
		case entities.RoleAccess:
			pv.Vlan = p.VlanID
		case entities.RoleTrunk:
			pv.NativeVlan = p.NativeVlan
			switch {
			case p.AllowAll:
				pv.Allowed = "all"
			case len(p.AllowedVlans) == 0:
				pv.Allowed = "none"
			default:
				pv.Allowed = ios.CompactRange(p.AllowedVlans)
			}
		}
		view.Ports = append(view.Ports, pv)
	}
	return view
}

func render(w io.Writer, format string, docs []*entities.ConfigDocument) error {
	switch format {
	case formatYAML, formatJSON:
		views := make([]switchView, 0, len(docs))
		for _, doc := range docs {
			views = append(views, newSwitchView(doc))
		}
		if format == formatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(views)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	default:
		for i, doc := range docs {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "! %s %s\n", doc.Identity.Hostname, doc.Identity.ManagementIP)
			fmt.Fprint(w, doc.Text())
		}
		return nil
	}
}
