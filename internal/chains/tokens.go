package chains

import "strings"

// MaxSeedTokens caps how many seed tokens one multi-address query may carry.
const MaxSeedTokens = 30

// DefaultSeedTokens is how many seed tokens the popular-token strategy joins.
const DefaultSeedTokens = 25

// popularTokens lists high-liquidity token addresses per chain, most traded first.
var popularTokens = map[string][]string{
	"ethereum": {
		"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
		"0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
		"0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48", // USDC
		"0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", // WBTC
		"0x6B175474E89094C44Da98b954EedeAC495271d0F", // DAI
		"0x514910771AF9Ca656af840dff83E8264EcF986CA", // LINK
		"0x7D1AfA7B718fb893dB30A3aBc0Cfc608AaCfeBB0", // MATIC
		"0x95aD61b0a150d79219dCF64E1E6Cc01f0B64C4cE", // SHIB
		"0x1f9840a85d5aF5bf1D1762F925BDADdC4201F984", // UNI
		"0x6982508145454Ce325dDbE47a25d4ec3d2311933", // PEPE
		"0x7Fc66500c84A76Ad7e9c93437bFc5Ac33E2DDaE9", // AAVE
		"0xae7ab96520DE3A18E5e111B5EaAb095312D7fE84", // stETH
		"0x0D8775F648430679A709E98d2b0Cb6250d2887EF", // BAT
		"0xC011a73ee8576Fb46F5E1c5751cA3B9Fe0af2a6F", // SNX
		"0x4d224452801ACEd8B2F0aebE155379bb5D594381", // APE
		"0x6810e776880C02933D47DB1b9fc05908e5386b96", // GNO
		"0xB8c77482e45F1F44dE1745F52C74426C631bDD52", // BNB
		"0x0bc529c00C6401aEF6D220BE8C6Ea1667F6Ad93e", // YFI
		"0x111111111117dC0aa78b770fA6A738034120C302", // 1INCH
		"0x853d955aCEf822Db058eb8505911ED77F175b99e", // FRAX
		"0x5A98FcBEA516Cf06857215779Fd812CA3beF1B32", // LDO
		"0xD533a949740bb3306d119CC777fa900bA034cd52", // CRV
		"0x9f8F72aA9304c8B593d555F12eF6589cC3A579A2", // MKR
		"0xC18360217D8F7Ab5e7c516566761Ea12Ce7F9D72", // ENS
		"0x3432B6A60D23Ca0dFCa7761B7ab56459D9C964D0", // FXS
	},
	"bsc": {
		"0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c", // WBNB
		"0x55d398326f99059fF775485246999027B3197955", // USDT
		"0xe9e7CEA3DedcA5984780Bafc599bD69ADd087D56", // BUSD
		"0x8AC76a51cc950d9822D68b83fE1Ad97B32Cd580d", // USDC
		"0x2170Ed0880ac9A755fd29B2688956BD959F933F8", // ETH
		"0x7130d2A12B9BCbFAe4f2634d864A1Ee1Ce3Ead9c", // BTCB
		"0x0E09FaBB73Bd3Ade0a17ECC321fD13a19e81cE82", // CAKE
		"0x3EE2200Efb3400fAbB9AacF31297cBdD1d435D47", // ADA
		"0xbA2aE424d960c26247Dd6c32edC70B295c744C43", // DOGE
		"0x1D2F0da169ceB9fC7B3144628dB156f3F6c60dBE", // XRP
		"0xF8A0BF9cF54Bb92F17374d9e9A321E6a111a51bD", // LINK
		"0xBf5140A22578168FD562DCcF235E5D43A02ce9B1", // UNI
		"0x8fF795a6F4D97E7887C79beA79aba5cc76444aDf", // BCH
		"0x7083609fCE4d1d8Dc0C979AAb8c869Ea2C873402", // DOT
		"0x4338665CBB7B2485A8855A139b75D5e34AB0DB94", // LTC
		"0xCC42724C6683B7E57334c4E856f4c9965ED682bD", // MATIC
		"0x1AF3F329e8BE154074D8769D1FFa4eE058B1DBc3", // DAI
		"0x2859e4544C4bB03966803b044A93563Bd2D0DD4D", // SHIB
		"0x0D8Ce2A99Bb6e3B7Db580eD848240e4a0F9aE153", // FIL
		"0x715D400F88C167884bbCc41C5FeA407ed4D2f8A0", // AXS
		"0xa2B726B1145A4773F68593CF171187d8EBe4d495", // INJ
		"0x56b6fB708fC5732DEC1Afc8D8556423A2EDcCbD6", // EOS
		"0x3203c9E46cA618C8C1cE5dC67e7e9D75f5da2377", // MBOX
		"0xfb6115445Bff7b52FeB98650C87f44907E58f802", // AAVE
		"0x88f1A5ae2A3BF98AEAF342D26B30a79438c9142e", // YFI
	},
	"solana": {
		"So11111111111111111111111111111111111111112",  // SOL
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
		"Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", // USDT
		"7vfCXTUXx5WJV5JADk17DUJ4ksgau7utNKj4b963voxs", // WETH (Wormhole)
		"mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",  // mSOL
		"DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263", // BONK
		"7GCihgDB8fe6KNjn2MYtkzZcRjQy3t9GHdC8uHYmW2hr", // POPCAT
		"JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN",  // JUP
		"HZ1JovNiVvGrGNiiYvEozEVgZ58xaU3RKwX8eACQBCt3", // PYTH
		"jtojtomepa8beP8AuQc6eXt5FriJwfFMwQx2v2f9mCL",  // JTO
		"WENWENvqqNya429ubCdR81ZmD69brwQaaBYY6p3LCpk",  // WEN
		"5oVNBeEEQvYi1cX3ir8Dx5n1P7pdxydbGF2X4TxVusJm", // INF
		"hntyVP6YFm1Hg25TN9WGLqM12b1TRezrhrnrSi8k4May", // HNT
		"Saber2gLauYim4Mvftnrasomsv6NvAuncvMEZwcLpD1",  // SBR
		"MNDEFzGvMt87ueuHvVU9VcTqsAP5b3fTGPsHuuPA5ey",  // MNDE
		"SRMuApVNdxXokk5GT7XD5cUUgXMBCoAz2LHeuAoKWRt",  // SRM
		"EchesyfXePKdLtoiZSL8pBe8Myagyy8ZRqsACNCFGnvp", // FIDA
		"BLZEEuZUBVqFhj8adcCFPJvPVCiCyVmh3hkJMrU8KuJA", // BLZE
		"orcaEKTdK7LKz57vaAYr9QeNsVEPfiu6QeMU1kektZE",  // ORCA
		"kinXdEcpDQeHPEuQnqmUgtYykqKGVFq6CeVX5iAHJq6",  // KIN
	},
	"polygon": {
		"0x0d500B1d8E8eF31E21C99d1Db9A6444d3ADf1270", // WPOL
		"0xc2132D05D31c914a87C6611C10748AEb04B58e8F", // USDT
		"0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174", // USDC.e
		"0x3c499c542cEF5E3811e1192ce70d8cC03d5c3359", // USDC
		"0x7ceB23fD6bC0adD59E62ac25578270cFf1b9f619", // WETH
		"0x1BFD67037B42Cf73acF2047067bd4F2C47D9BfD6", // WBTC
		"0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063", // DAI
		"0xD6DF932A45C0f255f85145f286eA0b292B21C90B", // AAVE
		"0x53E0bca35eC356BD5ddDFebbD1Fc0fD03FaBad39", // LINK
		"0xb33EaAd8d922B1083446DC23f610c2567fB5180f", // UNI
		"0x0b3F868E0BE5597D5DB7fEB59E1CADBb0fdDa50a", // SUSHI
		"0x385Eeac5cB85A38A9a07A70c73e0a3271CfB54A7", // GHST
		"0x580A84C73811E1839F75d86d75d88cCa0c241fF4", // QI
		"0x172370d5Cd63279eFa6d502DAB29171933a610AF", // CRV
		"0x9a71012B13CA4d3D0Cdc72A177DF3ef03b0E76A3", // BAL
		"0x831753DD7087CaC61aB5644b308642cc1c33Dc13", // QUICK
		"0x61299774020dA444Af134c82fa83E3810b309991", // RNDR
		"0x85955046DF4668e1DD369D2DE9f3AEB98DD2A369", // DFX
	},
	"arbitrum": {
		"0x82aF49447D8a07e3bd95BD0d56f35241523fBab1", // WETH
		"0xFd086bC7CD5C481DCC9C85ebE478A1C0b69FCbb9", // USDT
		"0xFF970A61A04b1cA14834A43f5dE4533eBDDB5CC8", // USDC.e
		"0xaf88d065e77c8cC2239327C5EDb3A432268e5831", // USDC
		"0x2f2a2543B76A4166549F7aaB2e75Bef0aefC5B0f", // WBTC
		"0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", // DAI
		"0x912CE59144191C1204E64559FE8253a0e49E6548", // ARB
		"0xf97f4df75117a78c1A5a0DBb814Af92458539FB4", // LINK
		"0xFa7F8980b0f1E64A2062791cc3b0871572f1F7f0", // UNI
		"0xfc5A1A6EB076a2C7aD06eD22C90d7E710E35ad0a", // GMX
		"0x539bdE0d7Dbd336b79148AA742883198BBF60342", // MAGIC
		"0x11cDb42B0EB46D95f990BeDD4695A6e3fA034978", // CRV
		"0x6694340fc020c5E6B96567843da2df01b2CE1eb6", // STG
		"0xd4d42F0b6DEF4CE0383636770eF773390d85c61A", // SUSHI
		"0x6C2C06790b3E3E3c38e12Ee22F8183b37a13EE55", // DPX
		"0x17FC002b466eEc40DaE837Fc4bE5c67993ddBd6F", // FRAX
		"0x23A941036Ae778Ac51Ab04CEa08Ed6e2FE103614", // GRT
		"0x080F6AEd32Fc474DD5717105Dba5ea57268F46eb", // SYN
		"0x55904F416586b5140A0f666CF5AcF320AdF64846", // LPT
		"0x3E6648C5a70A150A88bCE65F4aD4d506Fe15d2AF", // SPELL
	},
	"optimism": {
		"0x4200000000000000000000000000000000000006", // WETH
		"0x94b008aA00579c1307B0EF2c499aD98a8ce58e58", // USDT
		"0x7F5c764cBc14f9669B88837ca1490cCa17c31607", // USDC.e
		"0x0b2C639c533813f4Aa9D7837CAf62653d097Ff85", // USDC
		"0x68f180fcCe6836688e9084f035309E29Bf0A2095", // WBTC
		"0xDA10009cBd5D07dd0CeCc66161FC93D7c9000da1", // DAI
		"0x4200000000000000000000000000000000000042", // OP
		"0x350a791Bfc2C21F9Ed5d10980Dad2e2638ffa7f6", // LINK
		"0x8700dAec35aF8Ff88c16BdF0418774CB3D7599B4", // SNX
		"0x9e1028F5F1D5eDE59748FFceE5532509976840E0", // PERP
		"0x8c6f28f2F1A3C87F0f938b96d27520d9751ec8d9", // sUSD
		"0x76FB31fb4af56892A25e32cFC43De717950c9278", // AAVE
		"0x1F32b1c2345538c0c6f582fCB022739c4A194Ebb", // wstETH
		"0xdC6fF44d5d932Cbd77B52E5612Ba0529DC6226F1", // WLD
		"0x8Ae125E8653821E851F12A49F7765db9a9ce7384", // DOLA
	},
	"avalanche": {
		"0xB31f66AA3C1e785363F0875A1B74E27b85FD66c7", // WAVAX
		"0x9702230A8Ea53601f5cD2dc00fDBc13d4dF4A8c7", // USDT
		"0xB97EF9Ef8734C71904D8002F8b6Bc66Dd9c48a6E", // USDC
		"0x49D5c2BdFfac6CE2BFdB6640F4F80f226bc10bAB", // WETH.e
		"0x50b7545627a5162F82A992c33b87aDc75187B218", // WBTC.e
		"0xd586E7F844cEa2F87f50152665BCbc2C279D8d70", // DAI.e
		"0x5947BB275c521040051D82396192181b413227A3", // LINK.e
		"0x2b2C81e08f1Af8835a78Bb2A90AE924ACE0eA4bE", // SUSHI.e
		"0x8eBAf22B6F053dFFeaf46f4Dd9eFA95D89ba8580", // UNI.e
		"0xB09FE1613fE03E7361319d2a43eDc17422f36B09", // QI
		"0x6e84a6216eA6dACC71eE8E6b0a5B7322EEbC0fDd", // JOE
		"0xd1c3f94DE7e5B45fa4eDBBA472491a9f4B166FC4", // XAVA
		"0x60781C2586D68229fde47564546784ab3fACA982", // PNG
		"0x130966628846BFd36ff31a822705796e8cb8C18D", // MIM
	},
	"base": {
		"0x4200000000000000000000000000000000000006", // WETH
		"0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913", // USDC
		"0x50c5725949A6F0c72E6C4a641F24049A917DB0Cb", // DAI
		"0x940181a94A35A4569E4529A3CDfB74e38FD98631", // AERO
		"0x2Ae3F1Ec7F1F5012CFEab0185bfc7aa3cf0DEc22", // cbETH
		"0xd9aAEc86B65D86f6A7B5B1b0c42FFA531710b6CA", // USDbC
		"0x532f27101965dd16442E59d40670FaF5eBB142E4", // BRETT
		"0x4ed4E862860beD51a9570b96d89aF5E1B0Efefed", // DEGEN
		"0xA88594D404727625A9437C3f886C7643872296AE", // WELL
		"0xb79DD08EA68A908A97220C76d19A6aA9cBDE4376", // USD+
		"0xAC1Bd2486aAf3B5C0fc3Fd868558b082a531B2B4", // TOSHI
	},
}

// Tokens returns the seed token addresses for chain, or nil if none are
// configured.
func Tokens(chain string) []string {
	list := popularTokens[strings.ToLower(chain)]
	if len(list) > MaxSeedTokens {
		list = list[:MaxSeedTokens]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// TokensLimit returns at most limit seed tokens for chain. A limit outside
// (0, MaxSeedTokens] is clamped to MaxSeedTokens.
func TokensLimit(chain string, limit int) []string {
	if limit <= 0 || limit > MaxSeedTokens {
		limit = MaxSeedTokens
	}
	list := Tokens(chain)
	if len(list) > limit {
		list = list[:limit]
	}
	return list
}

// HasTokens reports whether chain has configured seed tokens.
func HasTokens(chain string) bool {
	return len(popularTokens[strings.ToLower(chain)]) > 0
}

// SeededChains returns the chains that have seed tokens, in catalog order.
func SeededChains() []string {
	var out []string
	for _, n := range networks {
		if HasTokens(n.Slug) {
			out = append(out, n.Slug)
		}
	}
	return out
}
