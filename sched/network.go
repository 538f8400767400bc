package sched

import "fmt"

// NetworkBranch is one directed pipe of the extended network, from a
// downtree node towards its uptree neighbour. Pressure drop along the
// branch comes from the referenced VFP table.
type NetworkBranch struct {
	DowntreeNode string
	UptreeNode   string
	VFPTable     int
	ALQ          float64
	ALQEquation  string
}

// NetworkNode is one node of the extended network.
type NetworkNode struct {
	Name             string
	TerminalPressure float64
	HasTerminal      bool
	AsChoke          bool
	AddGasLiftGas    bool
	ChokeTargetGroup string
}

// ExtNetwork is the extended surface network: nodes plus directed
// branches. Node order is insertion order.
type ExtNetwork struct {
	NodeOrder []string
	Nodes     map[string]NetworkNode
	Branches  []NetworkBranch
}

// NewExtNetwork returns an empty network.
func NewExtNetwork() ExtNetwork {
	return ExtNetwork{Nodes: make(map[string]NetworkNode)}
}

// Copy returns an independent copy.
func (n ExtNetwork) Copy() ExtNetwork {
	cp := ExtNetwork{
		NodeOrder: append([]string(nil), n.NodeOrder...),
		Nodes:     make(map[string]NetworkNode, len(n.Nodes)),
		Branches:  append([]NetworkBranch(nil), n.Branches...),
	}
	for name, node := range n.Nodes {
		cp.Nodes[name] = node
	}
	return cp
}

// Active reports whether the network has any branches.
func (n ExtNetwork) Active() bool { return len(n.Branches) > 0 }

// HasNode reports whether the named node exists.
func (n ExtNetwork) HasNode(name string) bool {
	_, ok := n.Nodes[name]
	return ok
}

// Node returns the named node.
func (n ExtNetwork) Node(name string) (NetworkNode, error) {
	node, ok := n.Nodes[name]
	if !ok {
		return NetworkNode{}, fmt.Errorf("no such network node %q", name)
	}
	return node, nil
}

func (n *ExtNetwork) ensureNode(name string) {
	if _, ok := n.Nodes[name]; !ok {
		n.NodeOrder = append(n.NodeOrder, name)
		n.Nodes[name] = NetworkNode{Name: name}
	}
}

// AddBranch installs a branch, implicitly creating its endpoints.
// An existing branch between the same pair is replaced.
func (n *ExtNetwork) AddBranch(branch NetworkBranch) {
	n.ensureNode(branch.DowntreeNode)
	n.ensureNode(branch.UptreeNode)
	for idx := range n.Branches {
		if n.Branches[idx].DowntreeNode == branch.DowntreeNode &&
			n.Branches[idx].UptreeNode == branch.UptreeNode {
			n.Branches[idx] = branch
			return
		}
	}
	n.Branches = append(n.Branches, branch)
}

// DropBranch removes the branch between the given pair, if present.
// BRANPROP with a zero VFP table deactivates a branch this way.
func (n *ExtNetwork) DropBranch(uptree, downtree string) bool {
	for idx := range n.Branches {
		if n.Branches[idx].UptreeNode == uptree && n.Branches[idx].DowntreeNode == downtree {
			n.Branches = append(n.Branches[:idx:idx], n.Branches[idx+1:]...)
			return true
		}
	}
	return false
}

// UpdateNode replaces the stored node. The node must already be part of
// a branch.
func (n *ExtNetwork) UpdateNode(node NetworkNode) error {
	if !n.HasNode(node.Name) {
		return fmt.Errorf("network node %q is not connected to any branch", node.Name)
	}
	n.Nodes[node.Name] = node
	return nil
}

// UptreeBranches returns the branches leaving the named node towards
// the tree root.
func (n ExtNetwork) UptreeBranches(node string) []NetworkBranch {
	var branches []NetworkBranch
	for _, branch := range n.Branches {
		if branch.DowntreeNode == node {
			branches = append(branches, branch)
		}
	}
	return branches
}

// NetworkBalance holds the NETBALAN balancing controls.
type NetworkBalance struct {
	Interval          float64
	PressureTolerance float64
	MaxIterations     int
	ThpTolerance      float64
	MaxThpIterations  int
}

// NewNetworkBalance returns the defaults in force before any NETBALAN.
func NewNetworkBalance() NetworkBalance {
	return NetworkBalance{PressureTolerance: 1.0e5 * 0.001, MaxIterations: 10, ThpTolerance: 0.01, MaxThpIterations: 10}
}

// Copy returns an independent copy.
func (b NetworkBalance) Copy() NetworkBalance { return b }

// FromNETBALAN replaces the controls with the content of a NETBALAN
// record.
func (b *NetworkBalance) FromNETBALAN(record DeckRecord) {
	b.Interval = record.Item("TIME_INTERVAL").SIDouble(0)
	if item := record.Item("PRESSURE_CONVERGENCE_LIMIT"); !item.DefaultApplied(0) {
		b.PressureTolerance = item.SIDouble(0)
	}
	if item := record.Item("MAX_ITER"); !item.DefaultApplied(0) {
		b.MaxIterations = item.Int(0)
	}
	if item := record.Item("THP_CONVERGENCE_LIMIT"); !item.DefaultApplied(0) {
		b.ThpTolerance = item.Double(0)
	}
	if item := record.Item("MAX_ITER_THP"); !item.DefaultApplied(0) {
		b.MaxThpIterations = item.Int(0)
	}
}
