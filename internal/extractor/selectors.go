package extractor

// Default selectors for the patent page layout. They track upstream markup
// and are expected to change; override them through configuration.
const (
	DefaultTitleSelector             = "h1.ipc-section-header__title"
	DefaultInventorsListSelector     = "ul.inventors-list"
	DefaultInventorItemSelector      = "li"
	DefaultAssigneeContainerSelector = "div.assignee-holder"
	DefaultAssigneeNameSelector      = "span.party-name"
)

// Selectors names the CSS selectors used to locate each record field.
type Selectors struct {
	Title             string
	InventorsList     string
	InventorItem      string
	AssigneeContainer string
	AssigneeName      string
}

// DefaultSelectors returns the built-in selector set.
func DefaultSelectors() Selectors {
	return Selectors{
		Title:             DefaultTitleSelector,
		InventorsList:     DefaultInventorsListSelector,
		InventorItem:      DefaultInventorItemSelector,
		AssigneeContainer: DefaultAssigneeContainerSelector,
		AssigneeName:      DefaultAssigneeNameSelector,
	}
}

// Merge returns s with every non-empty field of override applied.
func (s Selectors) Merge(override Selectors) Selectors {
	if override.Title != "" {
		s.Title = override.Title
	}
	if override.InventorsList != "" {
		s.InventorsList = override.InventorsList
	}
	if override.InventorItem != "" {
		s.InventorItem = override.InventorItem
	}
	if override.AssigneeContainer != "" {
		s.AssigneeContainer = override.AssigneeContainer
	}
	if override.AssigneeName != "" {
		s.AssigneeName = override.AssigneeName
	}
	return s
}
