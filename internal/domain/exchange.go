package domain

import "strings"

// exchangeSuffixes maps venue names to the symbol suffix the quote service uses.
var exchangeSuffixes = map[string]string{
	"ASE":                "",
	"BATS":               "",
	"CHICAGO_BOARD":      ".CBT",
	"CHICAGO_MERCANTILE": ".CME",
	"DOW_JONES":          "",
	"NASDAQ":             "",
	"NY_BOARD":           ".NYB",
	"NY_COMMODITIES":     ".CMX",
	"NY_MERCANTILE":      ".NYM",
	"NY_STOCK":           "",
	"OTC":                ".OB",
	"PINK_SHEETS":        ".PK",
	"SP":                 "",
	"BUENOS_AIRES":       ".BA",
	"VIENNA":             ".VI",
	"AUSTRALIAN":         ".AX",
	"BRUSSELS":           ".BR",
	"BOVESPA":            ".SA",
	"TORONTO":            ".TO",
	"TSX_VENTURE":        ".V",
	"SANTIAGO":           ".SN",
	"SHANGHAI":           ".SS",
	"SHENZHEN":           ".SZ",
	"COPENHAGEN":         ".CO",
	"EURONEXT":           ".NX",
	"PARIS":              ".PA",
	"BERLIN":             ".BE",
	"BREMEN":             ".BM",
	"DUSSELDORF":         ".DU",
	"FRANKFURT":          ".F",
	"HAMBURG":            ".HM",
	"HANOVER":            ".HA",
	"MUNICH":             ".MU",
	"STUTTGART":          ".SG",
	"XETRA":              ".DE",
	"HONG_KONG":          ".HK",
	"BOMBAY":             ".BO",
	"NATIONAL_INDIA":     ".NS",
	"JAKARTA":            ".JK",
	"TEL_AVIV":           ".TA",
	"MILAN":              ".MI",
	"NIKKEI":             "",
	"MEXICO":             ".MX",
	"AMSTERDAM":          ".AS",
	"NEW_ZEALAND":        ".NZ",
	"OSLO":               ".OL",
	"LISBON":             ".LS",
	"SINGAPORE":          ".SI",
	"KOREA":              ".KS",
	"KOSDAQ":             ".KQ",
	"BARCELONA":          ".BC",
	"BILBAO":             ".BI",
	"MADRID_FIXED":       ".MF",
	"MADRID_CATS":        ".MC",
	"MADRID_STOCK":       ".MA",
	"STOCKHOLM":          ".ST",
	"SWISS":              ".SW",
	"TAIWAN_OTC":         ".TWO",
	"TAIWAN":             ".TW",
	"FTSE":               "",
	"LONDON":             ".L",
}

// ExchangeSuffix resolves a venue name ("LONDON", "xetra") or an explicit
// suffix (".L") to the suffix appended to symbols.
func ExchangeSuffix(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", true
	}
	if strings.HasPrefix(name, ".") {
		return strings.ToUpper(name), true
	}
	suffix, ok := exchangeSuffixes[strings.ToUpper(name)]
	return suffix, ok
}
