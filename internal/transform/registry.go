package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for CLI flags.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (RequestTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_dependents", createSetDependents)
	registry.Register("set_marital_status", createSetMaritalStatus)
	registry.Register("set_other_income", createSetOtherIncome)
	registry.Register("set_turnover", createSetTurnover)
	registry.Register("set_expenses", createSetExpenses)
	registry.Register("set_salary_percent", createSetSalaryPercent)
	registry.Register("set_tax_year", createSetTaxYear)
	registry.Register("set_holding_years", createSetHoldingYears)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (RequestTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s (available: %s)", name, strings.Join(r.List(), ", "))
	}
	return factory(params)
}

// List returns the sorted names of all registered transforms.
func (r *TransformRegistry) List() []string {
	names := lo.Keys(r.factories)
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses "name:key=value,key=value",
// e.g. "set_dependents:count=3".
func (r *TransformRegistry) ParseTransformSpec(spec string) (RequestTransform, error) {
	name, paramsStr, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	paramsStr = strings.TrimSpace(paramsStr)
	if paramsStr != "" {
		for _, pair := range strings.Split(paramsStr, ",") {
			k, v, ok := strings.Cut(pair, "=")
			if !ok {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", pair)
			}
			params[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	return r.Create(strings.TrimSpace(name), params)
}

// ParseTransformSpecs parses each spec in order.
func (r *TransformRegistry) ParseTransformSpecs(specs []string) ([]RequestTransform, error) {
	out := make([]RequestTransform, 0, len(specs))
	for _, spec := range specs {
		t, err := r.ParseTransformSpec(spec)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func param(name string, params map[string]string, key string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%s requires '%s' parameter", name, key)
	}
	return v, nil
}

func intParam(name string, params map[string]string, key string) (int, error) {
	v, err := param(name, params, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

func decimalParam(name string, params map[string]string, key string) (decimal.Decimal, error) {
	v, err := param(name, params, key)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return d, nil
}

func createSetDependents(params map[string]string) (RequestTransform, error) {
	n, err := intParam("set_dependents", params, "count")
	if err != nil {
		return nil, err
	}
	return &SetDependents{Count: n}, nil
}

func createSetMaritalStatus(params map[string]string) (RequestTransform, error) {
	v, err := param("set_marital_status", params, "status")
	if err != nil {
		return nil, err
	}
	return &SetMaritalStatus{Status: domain.MaritalStatus(strings.ToLower(v))}, nil
}

func createSetOtherIncome(params map[string]string) (RequestTransform, error) {
	d, err := decimalParam("set_other_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetOtherIncome{Amount: d}, nil
}

func createSetTurnover(params map[string]string) (RequestTransform, error) {
	d, err := decimalParam("set_turnover", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetTurnover{Turnover: d}, nil
}

func createSetExpenses(params map[string]string) (RequestTransform, error) {
	d, err := decimalParam("set_expenses", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetExpenses{Expenses: d}, nil
}

func createSetSalaryPercent(params map[string]string) (RequestTransform, error) {
	d, err := decimalParam("set_salary_percent", params, "percent")
	if err != nil {
		return nil, err
	}
	return &SetSalaryPercent{Percent: d}, nil
}

func createSetTaxYear(params map[string]string) (RequestTransform, error) {
	n, err := intParam("set_tax_year", params, "year")
	if err != nil {
		return nil, err
	}
	return &SetTaxYear{Year: n}, nil
}

func createSetHoldingYears(params map[string]string) (RequestTransform, error) {
	n, err := intParam("set_holding_years", params, "years")
	if err != nil {
		return nil, err
	}
	return &SetHoldingYears{Years: n}, nil
}
