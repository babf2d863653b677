package packing

// PlacedItemRecord is the external shape of one placed item, per spec §6.
// Units are centimeters and kilograms; coordinates are pallet-local
// integers. This is the engine's own output contract — distinct from
// anything internal/artifact or internal/httpapi later wrap it in.
type PlacedItemRecord struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	TypeID       string  `json:"type_id"`
	Location     string  `json:"location"`
	PickingOrder int     `json:"picking_order"`
	X            int     `json:"x"`
	Y            int     `json:"y"`
	Z            int     `json:"z"`
	W            int     `json:"w"`
	H            int     `json:"h"`
	D            int     `json:"d"`
	Weight       float64 `json:"weight"`
	Tipped       bool    `json:"tipped"`
}

// PalletRecord is one pallet's worth of placed items, per spec §6.
type PalletRecord struct {
	PalletID int                `json:"pallet_id"`
	Items    []PlacedItemRecord `json:"items"`
}

// Serialize converts the engine's internal Pallet slice into the external
// record shape described in spec §6.
func Serialize(pallets []Pallet) []PalletRecord {
	out := make([]PalletRecord, len(pallets))
	for i, p := range pallets {
		items := make([]PlacedItemRecord, len(p.Items))
		for j, it := range p.Items {
			items[j] = PlacedItemRecord{
				ID:           it.ID,
				Name:         it.Name,
				TypeID:       it.TypeID,
				Location:     it.Location,
				PickingOrder: it.PickingOrder,
				X:            it.X,
				Y:            it.Y,
				Z:            it.Z,
				W:            it.EffW,
				H:            it.EffH,
				D:            it.EffD,
				Weight:       it.Weight,
				Tipped:       it.Tipped,
			}
		}
		out[i] = PalletRecord{PalletID: p.PalletID, Items: items}
	}
	return out
}
