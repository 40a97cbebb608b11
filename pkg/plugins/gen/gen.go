// Package gen implements the "gen" module: value generation for IDs,
// numbers, strings, booleans, and sample personal data.
//
// Actions:
//
//	{{gen:uuid}}            random UUID v4
//	{{gen:uuid:short}}      first 8 characters of a UUID v4
//	{{gen:number}}          random integer 0-100
//	{{gen:number:42}}       the number 42 (typed)
//	{{gen:number:1:6}}      random integer in [1, 6]
//	{{gen:float}}           random float in [0, 1)
//	{{gen:float:0:10}}      random float in [0, 10)
//	{{gen:float:0:10:2}}    same, rounded to 2 decimals
//	{{gen:string}}          random alphanumeric string of length 10
//	{{gen:string:hello}}    the literal string "hello"
//	{{gen:boolean}}         random boolean
//	{{gen:boolean:yes}}     the boolean true (truthy words recognized)
//	{{gen:hex}}             8 random hex characters
//	{{gen:hex:16}}          16 random hex characters
//	{{gen:oneOf:a:b:c}}     one of the listed values, picked at random
//	{{gen:name}} {{gen:firstName}} {{gen:lastName}} {{gen:email}}
//	{{gen:word}} {{gen:company}}    sample personal/business data
package gen

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	mathrand "math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/placegen/placegen/pkg/placeholder"
	"github.com/placegen/placegen/pkg/plugin"
	"github.com/placegen/placegen/pkg/value"
)

// ModuleName is the module name tokens use to address this plugin.
const ModuleName = "gen"

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Plugin is the gen module. The zero value is ready to use.
type Plugin struct{}

// New creates the gen plugin.
func New() *Plugin { return &Plugin{} }

// Name implements plugin.Plugin.
func (*Plugin) Name() string { return ModuleName }

// Resolve implements plugin.Plugin.
func (*Plugin) Resolve(_ context.Context, ph *placeholder.Parsed, _ *plugin.Context) (value.Value, error) {
	switch ph.Action {
	case "uuid":
		return resolveUUID(ph.Args)
	case "number":
		return resolveNumber(ph.Args)
	case "float":
		return resolveFloat(ph.Args)
	case "string":
		return resolveString(ph.Args)
	case "boolean":
		return resolveBoolean(ph.Args)
	case "hex":
		return resolveHex(ph.Args)
	case "oneOf":
		return resolveOneOf(ph.Args)
	case "name":
		return value.String(pick(firstNames) + " " + pick(lastNames)), nil
	case "firstName":
		return value.String(pick(firstNames)), nil
	case "lastName":
		return value.String(pick(lastNames)), nil
	case "email":
		return resolveEmail(), nil
	case "word":
		return value.String(pick(words)), nil
	case "company":
		return value.String(pick(companies)), nil
	default:
		return nil, fmt.Errorf("gen: unknown action %q", ph.Action)
	}
}

func resolveUUID(args []string) (value.Value, error) {
	id := uuid.New().String()
	if len(args) == 0 {
		return value.String(id), nil
	}
	if args[0] == "short" {
		return value.String(id[:8]), nil
	}
	return nil, fmt.Errorf("gen:uuid: unknown argument %q", args[0])
}

func resolveNumber(args []string) (value.Value, error) {
	switch len(args) {
	case 0:
		return value.Num(float64(mathrand.IntN(101))), nil
	case 1:
		n, err := value.NumFromLiteral(args[0])
		if err != nil {
			return nil, fmt.Errorf("gen:number: %w", err)
		}
		return n, nil
	case 2:
		lo, err1 := strconv.Atoi(args[0])
		hi, err2 := strconv.Atoi(args[1])
		if err1 != nil || err2 != nil || lo > hi {
			return nil, fmt.Errorf("gen:number: invalid range %q:%q", args[0], args[1])
		}
		return value.Num(float64(mathrand.IntN(hi-lo+1) + lo)), nil
	default:
		return nil, fmt.Errorf("gen:number: expected at most 2 arguments, got %d", len(args))
	}
}

func resolveFloat(args []string) (value.Value, error) {
	switch len(args) {
	case 0:
		return value.Num(mathrand.Float64()), nil
	case 2, 3:
		lo, err1 := strconv.ParseFloat(args[0], 64)
		hi, err2 := strconv.ParseFloat(args[1], 64)
		if err1 != nil || err2 != nil || lo > hi {
			return nil, fmt.Errorf("gen:float: invalid range %q:%q", args[0], args[1])
		}
		f := lo + mathrand.Float64()*(hi-lo)
		if len(args) == 3 {
			prec, err := strconv.Atoi(args[2])
			if err != nil || prec < 0 {
				return nil, fmt.Errorf("gen:float: invalid precision %q", args[2])
			}
			shift := math.Pow10(prec)
			f = math.Round(f*shift) / shift
		}
		return value.Num(f), nil
	default:
		return nil, fmt.Errorf("gen:float: expected 0, 2, or 3 arguments, got %d", len(args))
	}
}

func resolveString(args []string) (value.Value, error) {
	if len(args) == 0 {
		return value.String(randomString(10)), nil
	}
	// A literal echo; colons survive via the \: escape in the grammar.
	return value.String(strings.Join(args, ":")), nil
}

func resolveBoolean(args []string) (value.Value, error) {
	if len(args) == 0 {
		return value.Bool(mathrand.IntN(2) == 0), nil
	}
	switch strings.ToLower(args[0]) {
	case "true", "yes", "1", "on", "y":
		return value.Bool(true), nil
	case "false", "no", "0", "off", "n":
		return value.Bool(false), nil
	default:
		return nil, fmt.Errorf("gen:boolean: not a boolean word: %q", args[0])
	}
}

func resolveHex(args []string) (value.Value, error) {
	length := 8
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("gen:hex: invalid length %q", args[0])
		}
		length = n
	}
	b := make([]byte, (length+1)/2)
	if _, err := cryptorand.Read(b); err != nil {
		return nil, fmt.Errorf("gen:hex: %w", err)
	}
	return value.String(hex.EncodeToString(b)[:length]), nil
}

func resolveOneOf(args []string) (value.Value, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("gen:oneOf: needs at least one alternative")
	}
	return value.String(args[mathrand.IntN(len(args))]), nil
}

func resolveEmail() value.Value {
	local := strings.ToLower(pick(firstNames)) + strconv.Itoa(mathrand.IntN(1000))
	return value.String(local + "@" + pick(emailDomains))
}

func randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphanumeric[mathrand.IntN(len(alphanumeric))]
	}
	return string(b)
}

func pick(pool []string) string {
	return pool[mathrand.IntN(len(pool))]
}
