package finly

import (
	"log"
	"strings"
)

// MappingSource reads operator-maintained symbol mappings. Mappings are
// administered outside the engine; from here they are read-only.
type MappingSource interface {
	// Mappings returns the active provider symbols mapped to an internal
	// asset symbol, ordered by priority ascending then insertion order.
	Mappings(asset, provider string) ([]string, error)
}

// DefaultSymbolOverrides maps internal symbols to known-good provider
// spellings tried before the generic suffix heuristics. Like the pence
// allow-list, this is configuration data distilled from provider quirks.
var DefaultSymbolOverrides = map[string][]string{
	"NWG.L":  {"NWG", "NWG:LSE", "LON:NWG"},
	"PKN.WA": {"PKN", "PKN:WSE", "WSE:PKN"},
	"PZU.WA": {"PZU", "PZU:WSE", "WSE:PZU"},
}

// marketSuffixes maps a ticker's market suffix to the exchange-code
// spellings some providers expect instead.
var marketSuffixes = []struct {
	suffix   string
	variants []string // %s is the symbol root
}{
	{".L", []string{"%s:LSE", "LON:%s"}},
	{".WA", []string{"%s:WSE", "WSE:%s"}},
	{".F", []string{"%s:FRA"}},
	{".DE", []string{"%s:ETR"}},
	{".MI", []string{"%s:MIL"}},
	{".PA", []string{"%s:PAR"}},
}

// SymbolResolver produces the ordered list of candidate identifiers an
// external provider may understand for an internal asset symbol. Callers
// try candidates in order until one yields non-empty data.
type SymbolResolver struct {
	// Source supplies manual mappings; nil means no manual mappings.
	Source MappingSource
	// Overrides replaces DefaultSymbolOverrides when non-nil.
	Overrides map[string][]string
}

// NewSymbolResolver returns a resolver over a mapping source with the
// default override table.
func NewSymbolResolver(source MappingSource) *SymbolResolver {
	return &SymbolResolver{Source: source, Overrides: DefaultSymbolOverrides}
}

// Candidates returns the deduplicated, upper-cased candidate symbols for
// (asset, provider), in resolution order: manual mappings first, then the
// symbol itself, static overrides, suffix-derived heuristics, and finally
// the normalized symbol alone if nothing else matched.
func (r *SymbolResolver) Candidates(asset, provider string) []string {
	asset = NormalizeSymbol(asset)
	if asset == "" {
		return nil
	}
	provider = strings.ToLower(strings.TrimSpace(provider))

	seen := make(map[string]bool)
	var ordered []string
	add := func(symbol string) {
		symbol = strings.TrimSpace(symbol)
		if symbol == "" || seen[symbol] {
			return
		}
		seen[symbol] = true
		ordered = append(ordered, symbol)
	}

	if r.Source != nil {
		mapped, err := r.Source.Mappings(asset, provider)
		if err != nil {
			// A broken mapping table degrades to heuristics only.
			log.Printf("symbol mappings unavailable for %s/%s: %v", asset, provider, err)
		}
		for _, symbol := range mapped {
			add(symbol)
		}
	}

	add(asset)
	for _, override := range r.overrides()[asset] {
		add(override)
	}

	root := asset
	if i := strings.Index(asset, "."); i > 0 {
		root = asset[:i]
		add(root)
	}
	for _, market := range marketSuffixes {
		if strings.HasSuffix(asset, market.suffix) {
			for _, variant := range market.variants {
				add(strings.Replace(variant, "%s", root, 1))
			}
		}
	}

	if len(ordered) == 0 {
		ordered = append(ordered, asset)
	}
	return ordered
}

func (r *SymbolResolver) overrides() map[string][]string {
	if r.Overrides != nil {
		return r.Overrides
	}
	return DefaultSymbolOverrides
}
