package renderer

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"github.com/google/cel-go/ext"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var identifier = regexp.MustCompile(`^[_a-zA-Z][_a-zA-Z0-9]*$`)

var reservedWords = []string{
	"as", "break", "const", "continue", "else", "false", "for", "function", "if",
	"import", "in", "let", "loop", "namespace", "null", "package", "return", "true",
	"var", "void", "while",
}

// baseEnv holds the functions every template can call. Config keys are added
// per compile with Extend.
var baseEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.EagerlyValidateDeclarations(true),
		// Template size is bounded by the input file, not by the parser.
		cel.ParserExpressionSizeLimit(-1),
		ext.Strings(),
		ext.Lists(),
		cel.Function("stringify",
			cel.Overload("stringify_dyn", []*cel.Type{cel.DynType}, cel.StringType,
				cel.UnaryBinding(stringify))),
		cel.Function("title",
			cel.Overload("title_string", []*cel.Type{cel.StringType}, cel.StringType,
				cel.UnaryBinding(title))),
		cel.Function("fixed",
			cel.Overload("fixed_double_int", []*cel.Type{cel.DoubleType, cel.IntType}, cel.StringType,
				cel.BinaryBinding(fixed)),
			cel.Overload("fixed_int_int", []*cel.Type{cel.IntType, cel.IntType}, cel.StringType,
				cel.BinaryBinding(fixed))),
	)
})

func environment(keys []string) (*cel.Env, error) {
	base, err := baseEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create expression environment: %w", err)
	}

	vars := make([]cel.EnvOption, 0, len(keys))
	for _, key := range keys {
		vars = append(vars, cel.Variable(key, cel.DynType))
	}

	return base.Extend(vars...)
}

// ValidateKey reports whether key can be declared as a config variable.
func ValidateKey(key string) error {
	switch {
	case !identifier.MatchString(key):
		return fmt.Errorf("%w: %q is not an identifier", ErrInvalidKey, key)
	case slices.Contains(reservedWords, key):
		return fmt.Errorf("%w: %q is a reserved word", ErrInvalidKey, key)
	}

	return nil
}

func validateKeys(keys []string) error {
	seen := make(map[string]bool, len(keys))

	for _, key := range keys {
		if err := ValidateKey(key); err != nil {
			return err
		}

		if seen[key] {
			return fmt.Errorf("%w: %q is declared twice", ErrInvalidKey, key)
		}

		seen[key] = true
	}

	return nil
}

// stringify flattens nested lists into one string. Null renders as nothing.
func stringify(val ref.Val) ref.Val {
	var sb strings.Builder
	writeValue(&sb, val)

	return types.String(sb.String())
}

func writeValue(sb *strings.Builder, val ref.Val) {
	switch v := val.(type) {
	case types.String:
		sb.WriteString(string(v))
	case types.Null:
	case traits.Lister:
		for it := v.Iterator(); it.HasNext() == types.True; {
			writeValue(sb, it.Next())
		}
	default:
		if s, ok := val.ConvertToType(types.StringType).(types.String); ok {
			sb.WriteString(string(s))
			return
		}

		fmt.Fprint(sb, val.Value())
	}
}

func title(val ref.Val) ref.Val {
	s, ok := val.(types.String)
	if !ok {
		return types.MaybeNoSuchOverloadErr(val)
	}

	// Casers keep state, so each call gets its own.
	return types.String(cases.Title(language.Und).String(string(s)))
}

// fixed formats a number with a fixed count of decimal places, rounding half
// away from zero.
func fixed(num, places ref.Val) ref.Val {
	p, ok := places.(types.Int)
	if !ok {
		return types.MaybeNoSuchOverloadErr(places)
	}

	var d decimal.Decimal

	switch n := num.(type) {
	case types.Double:
		d = decimal.NewFromFloat(float64(n))
	case types.Int:
		d = decimal.NewFromInt(int64(n))
	default:
		return types.MaybeNoSuchOverloadErr(num)
	}

	return types.String(d.StringFixed(int32(p)))
}
