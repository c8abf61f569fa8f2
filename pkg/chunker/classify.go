package chunker

// Container classifies the structural container enclosing an element. The
// same P1 tag is a regulation when it sits inside the document body and a
// schedule paragraph when it sits inside a schedule; elements with neither
// ancestor are unclassified and excluded from both outputs.
type Container int

const (
	ContainerUnknown Container = iota
	ContainerBody
	ContainerSchedule
)

// String returns the container name for diagnostics.
func (container Container) String() string {
	switch container {
	case ContainerBody:
		return "body"
	case ContainerSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// ClassifyContainer walks the ancestor chain of element upward and returns
// the first discriminating container found. The walk stops at the first Body
// or Schedule ancestor; a chain exhausted without either yields
// ContainerUnknown.
func ClassifyContainer(element *Element) Container {
	for ancestor := element.Parent; ancestor != nil; ancestor = ancestor.Parent {
		if ancestor.Space != NamespaceLegislation {
			continue
		}
		switch ancestor.Local {
		case "Body":
			return ContainerBody
		case "Schedule":
			return ContainerSchedule
		}
	}
	return ContainerUnknown
}
