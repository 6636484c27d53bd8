package commands

import "strings"

// Published Branca test vectors, keys and payloads in base62.
const (
	vectorKey62     = "RNUCYvOYtxwoz7WVNmoEJl4RBn2CU2GAewrnABzkNPA" // "supersecretkeyyoushouldnotcommit"
	vectorPayload62 = "T8dgcjRGuYUueWht"                            // "Hello world!"
	vectorTimestamp = uint32(123206400)
	vectorToken     = "875GH23U0Dr6nHFA63DhOyd9LkYudBkX8RsCTOMz5xoYAMw9sMd5QwcEqLDRnTDHPenOX7nP2trlT"

	emptyPayloadToken = "4sfD0vPFhIif8cy4nB3BQkHeJqkOkDvinI4zIhMjYX4YXZU5WIq9ycCVjGzB5"

	// 32 zero bytes: a well formed key that authenticates nothing above.
	zeroKey62 = "00000000000000000000000000000000"
)

var vectorNonceHex = strings.Repeat("beef", 12)
