package roadnet

// Chennai reference network used when no network file is configured.
func Chennai() *Network {
	nodes := []Node{
		{ID: "Central_Depot", Kind: NodeDepot, Lat: 13.0827, Lon: 80.2707},
		{ID: "Anna_Salai_Node", Kind: NodeJunction, Lat: 13.0600, Lon: 80.2500},
		{ID: "OMR_Node", Kind: NodeJunction, Lat: 12.9500, Lon: 80.2400},
		{ID: "ECR_Node", Kind: NodeJunction, Lat: 12.9800, Lon: 80.2800},
		{ID: "Mount_Road_Node", Kind: NodeJunction, Lat: 13.0400, Lon: 80.2600},
		{ID: "Marina_Node", Kind: NodeJunction, Lat: 13.0500, Lon: 80.2900},
		{ID: "Velachery_Node", Kind: NodeJunction, Lat: 12.9800, Lon: 80.2200},
		{ID: "Ambattur_Node", Kind: NodeDepot, Lat: 13.1143, Lon: 80.1548},
		{ID: "Tambaram_Node", Kind: NodeDepot, Lat: 12.9249, Lon: 80.1000},
		{ID: "Zone_North", Kind: NodeZone, Lat: 13.15, Lon: 80.20},
		{ID: "Zone_South", Kind: NodeZone, Lat: 12.90, Lon: 80.15},
		{ID: "Zone_East", Kind: NodeZone, Lat: 13.05, Lon: 80.30},
		{ID: "Zone_West", Kind: NodeZone, Lat: 13.05, Lon: 80.10},
		{ID: "Zone_Central", Kind: NodeZone, Lat: 13.08, Lon: 80.27},
		{ID: "Link_Road_East", Kind: NodeJunction, Lat: 13.06, Lon: 80.28},
		{ID: "Link_Road_West", Kind: NodeJunction, Lat: 13.06, Lon: 80.15},
		{ID: "Link_Road_North", Kind: NodeJunction, Lat: 13.12, Lon: 80.22},
		{ID: "Link_Road_South", Kind: NodeJunction, Lat: 12.95, Lon: 80.18},
	}
	edges := []Edge{
		{From: "Central_Depot", To: "Anna_Salai_Node", Road: "Anna_Salai", DistanceKm: 3.5, TimeMin: 10},
		{From: "Central_Depot", To: "Zone_Central", Road: "Central_Link", DistanceKm: 1.0, TimeMin: 5},
		{From: "Anna_Salai_Node", To: "Mount_Road_Node", Road: "Anna_Salai", DistanceKm: 2.5, TimeMin: 8},
		{From: "Anna_Salai_Node", To: "Zone_Central", Road: "Link_1", DistanceKm: 2.0, TimeMin: 6},
		{From: "Mount_Road_Node", To: "OMR_Node", Road: "Mount_Road", DistanceKm: 4.0, TimeMin: 12},
		{From: "Mount_Road_Node", To: "Velachery_Node", Road: "Mount_Road", DistanceKm: 3.0, TimeMin: 9},
		{From: "OMR_Node", To: "Zone_South", Road: "OMR", DistanceKm: 5.0, TimeMin: 15},
		{From: "OMR_Node", To: "Velachery_Node", Road: "OMR", DistanceKm: 3.5, TimeMin: 10},
		{From: "OMR_Node", To: "ECR_Node", Road: "Link_2", DistanceKm: 2.0, TimeMin: 6},
		{From: "ECR_Node", To: "Zone_East", Road: "ECR", DistanceKm: 4.0, TimeMin: 12},
		{From: "ECR_Node", To: "Marina_Node", Road: "ECR", DistanceKm: 3.0, TimeMin: 9},
		{From: "Marina_Node", To: "Zone_East", Road: "Marina", DistanceKm: 2.5, TimeMin: 8},
		{From: "Marina_Node", To: "Zone_Central", Road: "Link_3", DistanceKm: 2.0, TimeMin: 6},
		{From: "Central_Depot", To: "Link_Road_East", Road: "Inner_Ring", DistanceKm: 1.5, TimeMin: 5},
		{From: "Link_Road_East", To: "Zone_East", Road: "Inner_Ring", DistanceKm: 2.0, TimeMin: 7},
		{From: "Central_Depot", To: "Link_Road_West", Road: "Inner_Ring", DistanceKm: 2.0, TimeMin: 6},
		{From: "Link_Road_West", To: "Zone_West", Road: "Inner_Ring", DistanceKm: 2.5, TimeMin: 8},
		{From: "Central_Depot", To: "Link_Road_North", Road: "NH_48", DistanceKm: 4.0, TimeMin: 12},
		{From: "Link_Road_North", To: "Zone_North", Road: "NH_48", DistanceKm: 3.0, TimeMin: 9},
		{From: "Link_Road_North", To: "Ambattur_Node", Road: "NH_48", DistanceKm: 2.0, TimeMin: 6},
		{From: "Ambattur_Node", To: "Zone_North", Road: "Local_1", DistanceKm: 4.0, TimeMin: 12},
		{From: "Velachery_Node", To: "Link_Road_South", Road: "Velachery_Main", DistanceKm: 3.0, TimeMin: 9},
		{From: "Link_Road_South", To: "Zone_South", Road: "Local_2", DistanceKm: 3.5, TimeMin: 10},
		{From: "Link_Road_South", To: "Tambaram_Node", Road: "GST_Road", DistanceKm: 4.0, TimeMin: 12},
		{From: "Tambaram_Node", To: "Zone_South", Road: "Local_3", DistanceKm: 3.0, TimeMin: 9},
		{From: "Zone_Central", To: "Link_Road_East", Road: "Link_4", DistanceKm: 1.5, TimeMin: 5},
		{From: "Zone_Central", To: "Link_Road_West", Road: "Link_5", DistanceKm: 2.0, TimeMin: 6},
	}
	return New(nodes, edges)
}
