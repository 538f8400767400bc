package sched

// networkHandlers is the registry for extended surface network
// keywords.
var networkHandlers = map[string]keywordHandler{
	"BRANPROP": handleBRANPROP,
	"NODEPROP": handleNODEPROP,
	"NETBALAN": handleNETBALAN,
}

func handleBRANPROP(ctx *HandlerContext) error {
	state := ctx.State()
	network := state.Network.Get()

	for _, record := range ctx.Keyword().Records() {
		downtree := record.Item("DOWNTREE_NODE").TrimmedString(0)
		uptree := record.Item("UPTREE_NODE").TrimmedString(0)
		vfpTable := record.Item("VFP_TABLE").Int(0)

		// A zero VFP table deactivates the branch.
		if vfpTable == 0 {
			network.DropBranch(uptree, downtree)
			continue
		}
		network.AddBranch(NetworkBranch{
			DowntreeNode: downtree,
			UptreeNode:   uptree,
			VFPTable:     vfpTable,
			ALQ:          record.Item("ALQ").Double(0),
			ALQEquation:  record.Item("ALQ_SURFACE_DENSITY").TrimmedString(0),
		})
	}

	state.Network.Update(network)
	return nil
}

func handleNODEPROP(ctx *HandlerContext) error {
	state := ctx.State()
	network := state.Network.Get()

	for _, record := range ctx.Keyword().Records() {
		name := record.Item("NAME").TrimmedString(0)
		node := NetworkNode{Name: name}

		pressureItem := record.Item("PRESSURE")
		if !pressureItem.DefaultApplied(0) && pressureItem.Double(0) >= 0 {
			node.TerminalPressure = pressureItem.SIDouble(0)
			node.HasTerminal = true
		}
		node.AsChoke = record.Item("AS_CHOKE").Bool(0)
		node.AddGasLiftGas = record.Item("ADD_GAS_LIFT_GAS").Bool(0)
		if node.AsChoke {
			node.ChokeTargetGroup = record.Item("CHOKE_GROUP").TrimmedString(0)
			if node.ChokeTargetGroup == "" {
				node.ChokeTargetGroup = name
			}
		}

		// A terminal node is where the network pressure is anchored;
		// it cannot sit below a VFP-governed branch.
		if node.HasTerminal {
			for _, branch := range network.UptreeBranches(name) {
				if branch.VFPTable != 0 {
					return NewInputError(ctx.Location(),
						"Node %s cannot both have a terminal pressure and an uptree VFP branch", name)
				}
			}
		}

		if err := network.UpdateNode(node); err != nil {
			return err
		}
	}

	state.Network.Update(network)
	return nil
}

func handleNETBALAN(ctx *HandlerContext) error {
	state := ctx.State()
	balance := state.NetBalance.Get()
	balance.FromNETBALAN(ctx.Keyword().Record(0))
	state.NetBalance.Update(balance)
	return nil
}
