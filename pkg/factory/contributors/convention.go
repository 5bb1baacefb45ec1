package contributors

import (
	"reflect"
	"strconv"

	"github.com/leapstack-labs/leapmeta/pkg/factory"
	"github.com/leapstack-labs/leapmeta/pkg/introspect"
)

// Convention method prefixes.
const (
	PrefixHide     = "Hide"
	PrefixDisable  = "Disable"
	PrefixChoices  = "Choices"
	PrefixDefault  = "Default"
	PrefixValidate = "Validate"
)

var errorType = reflect.TypeFor[error]()

// conventionName returns prefix+Member for members and prefix+N+Action for
// parameters.
func conventionName(ctx *factory.Context, prefix string) string {
	if ctx.Param != nil {
		return prefix + strconv.Itoa(ctx.Param.Index()) + ctx.Param.Action().Name()
	}
	return prefix + ctx.Name()
}

// consume finds the convention method for the current feature, checks its
// signature and removes it from the pool. A method with the wrong signature
// stays in the pool and ends up reported as an orphan.
func consume(ctx *factory.Context, prefix string, match func(introspect.MethodDescriptor) bool) (string, bool) {
	name := conventionName(ctx, prefix)
	m, ok := ctx.Methods.Find(name)
	if !ok {
		return "", false
	}
	if !match(m) {
		ctx.Logger.Debug("convention method has wrong signature", "method", name)
		return "", false
	}
	ctx.Methods.Remove(name)
	return name, true
}

func noParams(m introspect.MethodDescriptor) bool {
	return m.NumParams() == 0
}

func returnsKind(m introspect.MethodDescriptor, kinds ...reflect.Kind) bool {
	if len(m.Results) != 1 {
		return false
	}
	for _, k := range kinds {
		if m.Results[0].Kind() == k {
			return true
		}
	}
	return false
}

// returnsReason matches methods returning a string reason or an error.
func returnsReason(m introspect.MethodDescriptor) bool {
	return returnsKind(m, reflect.String) || (len(m.Results) == 1 && m.Results[0] == errorType)
}
