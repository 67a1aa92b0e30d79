// Package keeplist suppresses individual attributes for packages that must
// keep observing the real value even while a profile is applied. It only
// ever removes attributes from a pending override set, never adds any.
package keeplist

import (
	"github.com/octavarium-xyz/frameworks-base/api/schemas"
)

// suppressed maps a package name to the attribute keys withheld from it.
var suppressed = map[string]map[schemas.AttributeKey]struct{}{
	schemas.PackageSettingsIntelligence: {
		schemas.KeyFingerprint: {},
	},
}

// Filter returns props with every attribute suppressed for packageName
// removed, preserving the original order. The input slice is left intact.
func Filter(packageName string, props []schemas.Prop) []schemas.Prop {
	keys, ok := suppressed[packageName]
	if !ok {
		return props
	}
	out := make([]schemas.Prop, 0, len(props))
	for _, p := range props {
		if _, drop := keys[p.Key]; drop {
			continue
		}
		out = append(out, p)
	}
	return out
}
