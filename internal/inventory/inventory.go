package inventory

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Sample struct {
	ID       string `yaml:"id"`
	State    State  `yaml:"state"`
	Purity   string `yaml:"purity"`
	Template bool   `yaml:"template"`
}

type Part struct {
	Name    string   `yaml:"name"`
	Samples []Sample `yaml:"samples"`
}

type Tray struct {
	Name  string `yaml:"name"`
	Parts []Part `yaml:"parts"`
}

// Inventory is the sample catalogue of every tray and part.
type Inventory struct {
	Trays []Tray `yaml:"trays"`
}

func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory %s: %w", path, err)
	}
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}
	if err := validate(&inv); err != nil {
		return nil, fmt.Errorf("invalid inventory %s: %w", path, err)
	}
	return &inv, nil
}

func validate(inv *Inventory) error {
	for i, t := range inv.Trays {
		if t.Name == "" {
			return fmt.Errorf("tray %d: name is required", i)
		}
		for j, p := range t.Parts {
			if p.Name == "" {
				return fmt.Errorf("tray %q part %d: name is required", t.Name, j)
			}
			for k, s := range p.Samples {
				if s.ID == "" {
					return fmt.Errorf("%s/%s sample %d: id is required", t.Name, p.Name, k)
				}
				if s.State == 0 {
					return fmt.Errorf("%s/%s/%s: state is required", t.Name, p.Name, s.ID)
				}
			}
		}
	}
	return nil
}

// Samples returns every sample registered for tray/part.
func (inv *Inventory) Samples(tray, part string) ([]Sample, error) {
	p, err := inv.part(tray, part)
	if err != nil {
		return nil, err
	}
	return p.Samples, nil
}

// Templates lists template samples of the given trays in file order.
// An empty tray list selects every tray.
func (inv *Inventory) Templates(trays []string) []Template {
	wanted := make(map[string]bool, len(trays))
	for _, t := range trays {
		wanted[t] = true
	}
	var templates []Template
	for _, t := range inv.Trays {
		if len(wanted) > 0 && !wanted[t.Name] {
			continue
		}
		for _, p := range t.Parts {
			for _, s := range p.Samples {
				if s.Template {
					templates = append(templates, Template{Tray: t.Name, Part: p.Name, ID: s.ID, State: s.State})
				}
			}
		}
	}
	return templates
}

// Lookup resolves a "tray/part/id" reference.
func (inv *Inventory) Lookup(ref string) (Template, error) {
	fields := strings.Split(ref, "/")
	if len(fields) != 3 {
		return Template{}, fmt.Errorf("template reference %q: want tray/part/id", ref)
	}
	p, err := inv.part(fields[0], fields[1])
	if err != nil {
		return Template{}, err
	}
	for _, s := range p.Samples {
		if s.ID == fields[2] {
			return Template{Tray: fields[0], Part: fields[1], ID: s.ID, State: s.State}, nil
		}
	}
	return Template{}, fmt.Errorf("template %q not found", ref)
}

func (inv *Inventory) part(tray, part string) (*Part, error) {
	for i := range inv.Trays {
		t := &inv.Trays[i]
		if t.Name != tray {
			continue
		}
		for j := range t.Parts {
			if t.Parts[j].Name == part {
				return &t.Parts[j], nil
			}
		}
		return nil, fmt.Errorf("part %q not found in tray %q", part, tray)
	}
	return nil, fmt.Errorf("tray %q not found", tray)
}
