package logging

import (
	"github.com/funny-code66/substrate-erc20-staking-contract/libs/num"

	"go.uber.org/zap"
)

// String constructs a field with the given key and value.
func String(key, val string) zap.Field {
	return zap.String(key, val)
}

// Int64 constructs a field with the given key and value.
func Int64(key string, val int64) zap.Field {
	return zap.Int64(key, val)
}

// Uint64 constructs a field with the given key and value.
func Uint64(key string, val uint64) zap.Field {
	return zap.Uint64(key, val)
}

// Int constructs a field with the given key and value.
func Int(key string, val int) zap.Field {
	return zap.Int(key, val)
}

// Bool constructs a field with the given key and value.
func Bool(key string, val bool) zap.Field {
	return zap.Bool(key, val)
}

// Error constructs a field that stores err under the key "error".
func Error(err error) zap.Field {
	return zap.Error(err)
}

// BigUint constructs a field with the given key, rendering the
// uint as its decimal string representation.
func BigUint(key string, val *num.Uint) zap.Field {
	return zap.String(key, val.String())
}

// Decimal constructs a field with the given key, rendering the
// decimal as a string.
func Decimal(key string, val num.Decimal) zap.Field {
	return zap.String(key, val.String())
}

// PartyID constructs a field with the party id under the key "party".
func PartyID(party string) zap.Field {
	return zap.String("party", party)
}
