// Package profiles holds the static catalog of device identities the
// policy engine can impersonate. The catalog ships embedded in the binary
// so the set of known profiles is fixed at build time and identical on
// every install.
package profiles

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
)

//go:embed profiles.json
var catalogJSON []byte

var (
	loadOnce sync.Once
	catalog  map[schemas.ProfileID]schemas.Profile
	ordered  []schemas.ProfileID
)

type profileSpec struct {
	ID    string     `json:"id"`
	Props []propSpec `json:"props"`
}

type propSpec struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// load parses the embedded catalog. The asset is part of the binary, so a
// parse failure is a build defect and panics rather than returning an error.
func load() {
	var specs []profileSpec
	if err := json.Unmarshal(catalogJSON, &specs); err != nil {
		panic(fmt.Sprintf("profiles: embedded catalog is malformed: %v", err))
	}

	catalog = make(map[schemas.ProfileID]schemas.Profile, len(specs))
	ordered = make([]schemas.ProfileID, 0, len(specs))

	for _, spec := range specs {
		id := schemas.ProfileID(spec.ID)
		if _, dup := catalog[id]; dup {
			panic(fmt.Sprintf("profiles: duplicate profile %q in embedded catalog", spec.ID))
		}
		profile := schemas.Profile{
			ID:    id,
			Props: make([]schemas.Prop, 0, len(spec.Props)),
		}
		for _, p := range spec.Props {
			key, err := schemas.ParseAttributeKey(p.Key)
			if err != nil {
				panic(fmt.Sprintf("profiles: profile %q: %v", spec.ID, err))
			}
			profile.Props = append(profile.Props, schemas.Prop{
				Key:   key,
				Value: schemas.StringValue(p.Value),
			})
		}
		catalog[id] = profile
		ordered = append(ordered, id)
	}
}

// Lookup returns the profile registered under id. The returned profile is a
// copy; callers may reorder or trim its props without affecting the catalog.
func Lookup(id schemas.ProfileID) (schemas.Profile, bool) {
	loadOnce.Do(load)

	src, ok := catalog[id]
	if !ok {
		return schemas.Profile{}, false
	}
	out := schemas.Profile{
		ID:    src.ID,
		Props: make([]schemas.Prop, len(src.Props)),
	}
	copy(out.Props, src.Props)
	return out, true
}

// IDs returns every profile identifier in catalog order.
func IDs() []schemas.ProfileID {
	loadOnce.Do(load)

	out := make([]schemas.ProfileID, len(ordered))
	copy(out, ordered)
	return out
}
