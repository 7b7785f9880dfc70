package mapper

// NodeDTO is a node of a network view.
type NodeDTO struct {
	ID         int    `json:"id"`
	ExternalID int64  `json:"idNeo4j"`
	Caption    string `json:"caption"`
	SubType    bool   `json:"subType"`
	SubTypeVal int    `json:"subTypeVal"`
	Type       string `json:"type,omitempty"`
}

// Equal reports whether both nodes have the same id.
func (n NodeDTO) Equal(o NodeDTO) bool { return n.ID == o.ID }

// LinkDTO connects two nodes by id.
type LinkDTO struct {
	Caption string `json:"caption,omitempty"`
	Type    int    `json:"type"`
	Source  int    `json:"source"`
	Target  int    `json:"target"`
}

// Network collects nodes and links, numbering nodes in insertion order.
type Network struct {
	Nodes []NodeDTO `json:"nodes"`
	Links []LinkDTO `json:"links"`

	byExternal map[int64]int
}

// AddNode adds a node for externalID, or returns the id of the existing one.
func (n *Network) AddNode(externalID int64, caption, typ string) int {
	if n.byExternal == nil {
		n.byExternal = make(map[int64]int)
	}
	if id, ok := n.byExternal[externalID]; ok {
		return id
	}
	id := len(n.Nodes)
	n.Nodes = append(n.Nodes, NodeDTO{ID: id, ExternalID: externalID, Caption: caption, Type: typ})
	n.byExternal[externalID] = id
	return id
}

// Link adds a link of type 1 between two node ids.
func (n *Network) Link(source, target int, caption string) {
	n.Links = append(n.Links, LinkDTO{Caption: caption, Type: 1, Source: source, Target: target})
}
