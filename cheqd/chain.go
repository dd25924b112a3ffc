package cheqd

// Chain constants for the cheqd mainnet. The BigDipper indexer returns all
// amounts in the base denomination, so conversions to the display denomination
// always shift by the exponent below.
const (
	ChainID = "cheqd-mainnet-1"
	Name    = "cheqd"

	BaseDenom    = "ncheq"
	DisplayDenom = "CHEQ"
	Exponent     = 9
)
