package schemas

import (
	"fmt"
	"strconv"
)

// -- Attribute Keys --

// AttributeKey identifies one exposed build-identity slot (the mutable
// process-wide fields a caller observes when it inspects the device build).
type AttributeKey string

const (
	KeyBrand            AttributeKey = "BRAND"
	KeyDevice           AttributeKey = "DEVICE"
	KeyManufacturer     AttributeKey = "MANUFACTURER"
	KeyProduct          AttributeKey = "PRODUCT"
	KeyModel            AttributeKey = "MODEL"
	KeyHardware         AttributeKey = "HARDWARE"
	KeyBoard            AttributeKey = "BOARD"
	KeyFingerprint      AttributeKey = "FINGERPRINT"
	KeyBuildID          AttributeKey = "ID"
	KeyDisplay          AttributeKey = "DISPLAY"
	KeyType             AttributeKey = "TYPE"
	KeyTags             AttributeKey = "TAGS"
	KeySecurityPatch    AttributeKey = "SECURITY_PATCH"
	KeyDeviceInitialSDK AttributeKey = "DEVICE_INITIAL_SDK_INT"
	KeyRelease          AttributeKey = "RELEASE"
	KeyTime             AttributeKey = "TIME"
)

// attributeOrder is the canonical slot ordering used by snapshots and batch
// application.
var attributeOrder = []AttributeKey{
	KeyBrand, KeyDevice, KeyManufacturer, KeyProduct, KeyModel,
	KeyHardware, KeyBoard, KeyFingerprint, KeyBuildID, KeyDisplay,
	KeyType, KeyTags, KeySecurityPatch, KeyDeviceInitialSDK, KeyRelease,
	KeyTime,
}

// AllAttributeKeys returns every known attribute key in canonical order.
func AllAttributeKeys() []AttributeKey {
	keys := make([]AttributeKey, len(attributeOrder))
	copy(keys, attributeOrder)
	return keys
}

// ParseAttributeKey maps the wire spelling of a key (e.g. "FINGERPRINT") to
// its AttributeKey, rejecting anything outside the known set.
func ParseAttributeKey(s string) (AttributeKey, error) {
	for _, k := range attributeOrder {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown attribute key %q", s)
}

// -- Typed Values --

// ValueKind tags the runtime type carried by a Value.
type ValueKind int

const (
	KindString ValueKind = iota
	KindInt
	KindLong
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a typed property value: a string, a 32-bit integer or a 64-bit
// integer. The zero Value is the empty string.
type Value struct {
	kind ValueKind
	str  string
	num  int64
}

// StringValue wraps a plain string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// IntValue wraps a 32-bit integer.
func IntValue(n int32) Value {
	return Value{kind: KindInt, num: int64(n)}
}

// LongValue wraps a 64-bit integer.
func LongValue(n int64) Value {
	return Value{kind: KindLong, num: n}
}

// Kind reports the runtime type of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Int64 returns the numeric payload. It is only meaningful for KindInt and
// KindLong values.
func (v Value) Int64() int64 {
	return v.num
}

// String renders the value in its wire form: the raw string for KindString,
// the decimal representation otherwise.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}
	return strconv.FormatInt(v.num, 10)
}

// -- Profiles --

// ProfileID names one entry in the device profile registry.
type ProfileID string

const (
	ProfileGeneric        ProfileID = "generic"
	ProfileRecentFlagship ProfileID = "recent_flagship"
	ProfileTablet         ProfileID = "tablet"
	ProfileLegacyFlagship ProfileID = "legacy_flagship"
	ProfileMusicBrand     ProfileID = "music_brand"
)

// Prop is a single attribute override.
type Prop struct {
	Key   AttributeKey
	Value Value
}

// Profile is an ordered, immutable bundle of attribute overrides that
// together mimic one physical device.
type Profile struct {
	ID    ProfileID
	Props []Prop
}

// Lookup returns the value a profile carries for key, if any.
func (p Profile) Lookup(key AttributeKey) (Value, bool) {
	for _, prop := range p.Props {
		if prop.Key == key {
			return prop.Value, true
		}
	}
	return Value{}, false
}
