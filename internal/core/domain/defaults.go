package domain

// defaultSection is the template for one built-in section.
type defaultSection struct {
	title       string
	description string
	icon        string
	items       []defaultItem
}

type defaultItem struct {
	label   string
	options []string
}

var defaultChecklist = []defaultSection{
	{
		title:       "Roof",
		description: "Roof covering, flashing, gutters and drainage",
		icon:        "home",
		items: []defaultItem{
			{label: "Roof covering condition", options: []string{"Asphalt shingle", "Metal", "Tile", "Flat/membrane"}},
			{label: "Flashing and penetrations"},
			{label: "Gutters and downspouts"},
			{label: "Chimney"},
		},
	},
	{
		title:       "Exterior",
		description: "Siding, grading, walkways, doors and windows",
		icon:        "building",
		items: []defaultItem{
			{label: "Siding and trim", options: []string{"Vinyl", "Wood", "Brick", "Stucco", "Fiber cement"}},
			{label: "Grading and drainage"},
			{label: "Exterior doors"},
			{label: "Windows"},
			{label: "Decks, porches and steps"},
		},
	},
	{
		title:       "Structure",
		description: "Foundation, framing and crawlspace or basement",
		icon:        "layers",
		items: []defaultItem{
			{label: "Foundation", options: []string{"Slab", "Crawlspace", "Basement"}},
			{label: "Visible framing"},
			{label: "Signs of water intrusion"},
		},
	},
	{
		title:       "Plumbing",
		description: "Supply, drain, waste and water heater",
		icon:        "droplet",
		items: []defaultItem{
			{label: "Supply piping", options: []string{"Copper", "PEX", "Galvanized", "CPVC"}},
			{label: "Drain and waste piping"},
			{label: "Water heater"},
			{label: "Fixtures and faucets"},
		},
	},
	{
		title:       "Electrical",
		description: "Service, panel, branch wiring and devices",
		icon:        "zap",
		items: []defaultItem{
			{label: "Service entrance"},
			{label: "Main panel", options: []string{"100A", "150A", "200A", "400A"}},
			{label: "Branch wiring"},
			{label: "GFCI/AFCI protection"},
			{label: "Smoke and CO detectors"},
		},
	},
	{
		title:       "Heating & Cooling",
		description: "Heating, air conditioning and ventilation",
		icon:        "thermometer",
		items: []defaultItem{
			{label: "Heating system", options: []string{"Forced air", "Boiler", "Heat pump", "Electric baseboard"}},
			{label: "Cooling system"},
			{label: "Ductwork and vents"},
		},
	},
	{
		title:       "Interior",
		description: "Walls, ceilings, floors, stairs and kitchen",
		icon:        "sofa",
		items: []defaultItem{
			{label: "Walls and ceilings"},
			{label: "Floors"},
			{label: "Stairs and railings"},
			{label: "Kitchen appliances"},
		},
	},
}

// DefaultChecklist returns the built-in checklist with identifiers from newID.
// It is used when no generation service is configured or its response cannot be parsed.
func DefaultChecklist(newID func() string) []ChecklistSection {
	sections := make([]ChecklistSection, 0, len(defaultChecklist))
	for _, ds := range defaultChecklist {
		section := ChecklistSection{
			ID:          newID(),
			Title:       ds.title,
			Description: ds.description,
			IconName:    ds.icon,
			Items:       make([]ChecklistItem, 0, len(ds.items)),
		}
		for _, di := range ds.items {
			item := ChecklistItem{
				ID:     newID(),
				Label:  di.label,
				Status: ItemStatusUntouched,
			}
			if len(di.options) > 0 {
				item.Options = append([]string(nil), di.options...)
			}
			section.Items = append(section.Items, item)
		}
		section.Status = DeriveSectionStatus(section.Items)
		sections = append(sections, section)
	}
	return sections
}
