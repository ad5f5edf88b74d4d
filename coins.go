package nspv

// CoinConfig is one entry of the coins file consumed by the daemon.
type CoinConfig struct {
	Coin    string `json:"coin"`
	Asset   string `json:"asset"`
	FName   string `json:"fname"`
	RPCPort int    `json:"rpcport"`
	MM2     int    `json:"mm2"`
	P2P     int    `json:"p2p"`
	Magic   string `json:"magic"`
	NSPV    string `json:"nSPV"`
}

// CoinConfigParams are the flat fields BuildCoinConfig assembles.
type CoinConfigParams struct {
	Source  string
	Coin    string
	Asset   string
	FName   string
	RPCPort int
	MM2     int
	P2P     int
	Magic   string
	NSPV    string
}

// BuildCoinConfig assembles a coins file entry. Source names where the
// fields came from and is not part of the entry.
func BuildCoinConfig(p CoinConfigParams) CoinConfig {
	return CoinConfig{
		Coin:    p.Coin,
		Asset:   p.Asset,
		FName:   p.FName,
		RPCPort: p.RPCPort,
		MM2:     p.MM2,
		P2P:     p.P2P,
		Magic:   p.Magic,
		NSPV:    p.NSPV,
	}
}
