package domain

// ItemTypeLabour is the item type whose rows carry no material catalog
// reference. Every other item type is a material category owned by the
// external item catalog.
const ItemTypeLabour = "Labour"

type ContractorMode string

const (
	ContractorLabourOnly ContractorMode = "labour_only"
	ContractorTurnkey    ContractorMode = "turnkey"
)

type AuthoringContext string

const (
	// ContextNew is a project built from scratch or seeded from a template.
	ContextNew AuthoringContext = "new"
	// ContextEditing is a project hydrated from a previously submitted one.
	// Template and business-type inference are skipped in this context.
	ContextEditing AuthoringContext = "editing"
)

// UOMCatalog reports the unit-of-measure strings valid for an item type.
// The catalog itself is an external collaborator; the domain only consults
// it when an item type changes.
type UOMCatalog func(itemType string) []string

func isLabour(itemType string) bool { return itemType == ItemTypeLabour }
