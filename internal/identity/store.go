// Package identity owns the device identity a process exposes to its
// callers. The Store starts out as a copy of the real build values and is
// then overwritten, attribute by attribute, as the policy engine applies
// profiles and targeted overrides.
package identity

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/octavarium-xyz/frameworks-base/api/schemas"
)

// ErrUnknownKey is returned when a write names an attribute outside the
// canonical set.
var ErrUnknownKey = errors.New("unknown build attribute")

// Store holds one typed slot per build attribute. The slot's type is fixed
// by the attribute, not by the value written: DEVICE_INITIAL_SDK_INT is an
// int slot, TIME is a long slot, everything else is a string slot. Writes
// coerce into the slot type or fail without touching the slot. Safe for
// concurrent use.
type Store struct {
	logger *zap.Logger

	mu    sync.RWMutex
	slots map[schemas.AttributeKey]schemas.Value
}

// NewStore seeds every slot with the corresponding real build value.
func NewStore(logger *zap.Logger, seed schemas.BuildInfo) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		logger: logger.Named("identity"),
		slots:  make(map[schemas.AttributeKey]schemas.Value, len(schemas.AllAttributeKeys())),
	}
	for _, p := range seed.Props() {
		s.slots[p.Key] = p.Value
	}
	return s
}

// Set writes one attribute, coercing value into the slot's type. On any
// failure the slot keeps its previous value.
func (s *Store) Set(key schemas.AttributeKey, value schemas.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	coerced, err := coerce(key, value)
	if err != nil {
		return err
	}
	s.slots[key] = coerced
	return nil
}

// Apply writes props in order. A failing prop is logged and skipped; the
// remaining props are still applied. Returns the number of slots written.
func (s *Store) Apply(props []schemas.Prop) int {
	applied := 0
	for _, p := range props {
		if err := s.Set(p.Key, p.Value); err != nil {
			s.logger.Warn("Skipping attribute override.",
				zap.String("key", string(p.Key)),
				zap.Error(err))
			continue
		}
		s.logger.Debug("Attribute overridden.",
			zap.String("key", string(p.Key)),
			zap.String("value", p.Value.String()))
		applied++
	}
	return applied
}

// Get returns the currently exposed value for key.
func (s *Store) Get(key schemas.AttributeKey) (schemas.Value, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	return v, ok
}

// Snapshot returns the full exposed identity in canonical attribute order.
func (s *Store) Snapshot() []schemas.Prop {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schemas.Prop, 0, len(s.slots))
	for _, key := range schemas.AllAttributeKeys() {
		if v, ok := s.slots[key]; ok {
			out = append(out, schemas.Prop{Key: key, Value: v})
		}
	}
	return out
}

func slotKind(key schemas.AttributeKey) schemas.ValueKind {
	switch key {
	case schemas.KeyDeviceInitialSDK:
		return schemas.KindInt
	case schemas.KeyTime:
		return schemas.KindLong
	default:
		return schemas.KindString
	}
}

func coerce(key schemas.AttributeKey, value schemas.Value) (schemas.Value, error) {
	switch slotKind(key) {
	case schemas.KindInt:
		return coerceInt(key, value)
	case schemas.KindLong:
		return coerceLong(key, value)
	default:
		// String slots accept every kind; numerics render in decimal.
		return schemas.StringValue(value.String()), nil
	}
}

func coerceInt(key schemas.AttributeKey, value schemas.Value) (schemas.Value, error) {
	switch value.Kind() {
	case schemas.KindInt:
		return value, nil
	case schemas.KindLong:
		n := value.Int64()
		if n < -1<<31 || n > 1<<31-1 {
			return schemas.Value{}, fmt.Errorf("value %d overflows int slot %q", n, key)
		}
		return schemas.IntValue(int32(n)), nil
	default:
		n, err := strconv.ParseInt(value.String(), 10, 32)
		if err != nil {
			return schemas.Value{}, fmt.Errorf("parsing %q for int slot %q: %w", value.String(), key, err)
		}
		return schemas.IntValue(int32(n)), nil
	}
}

func coerceLong(key schemas.AttributeKey, value schemas.Value) (schemas.Value, error) {
	switch value.Kind() {
	case schemas.KindInt, schemas.KindLong:
		return schemas.LongValue(value.Int64()), nil
	default:
		n, err := strconv.ParseInt(value.String(), 10, 64)
		if err != nil {
			return schemas.Value{}, fmt.Errorf("parsing %q for long slot %q: %w", value.String(), key, err)
		}
		return schemas.LongValue(n), nil
	}
}
