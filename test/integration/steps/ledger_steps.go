package steps

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cucumber/godog"
)

// registerLedgerSteps registers steps that seed households, categories, accounts and spending.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I have a household named "([^"]*)"$`, iHaveAHouseholdNamed)
	ctx.Step(`^the household has an? (expense|income) category "([^"]*)"$`, theHouseholdHasACategory)
	ctx.Step(`^the household has a (cash|current|credit|savings) account "([^"]*)" with balance "([^"]*)"$`, theHouseholdHasAnAccount)
	ctx.Step(`^the budget for "([^"]*)" in "([^"]*)" is "([^"]*)" with rollover (enabled|disabled)$`, theBudgetIs)
	ctx.Step(`^I spent "([^"]*)" on "([^"]*)" on "([^"]*)"$`, iSpentOn)
	ctx.Step(`^I earned "([^"]*)" as "([^"]*)" on "([^"]*)"$`, iEarnedAs)
}

func iHaveAHouseholdNamed(ctx context.Context, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]any{"name": name, "base_currency": "USD"}
	if err := tc.sendJSON(http.MethodPost, "/api/v1/households", body, http.StatusCreated, &out); err != nil {
		return err
	}
	tc.householdID = out.ID
	return nil
}

func theHouseholdHasACategory(ctx context.Context, kind, name string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]any{"household_id": tc.householdID, "name": name, "kind": kind}
	if err := tc.sendJSON(http.MethodPost, "/api/v1/categories", body, http.StatusCreated, &out); err != nil {
		return err
	}
	tc.categories[name] = out.ID
	return nil
}

func theHouseholdHasAnAccount(ctx context.Context, accountType, name, balance string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	var out struct {
		ID string `json:"id"`
	}
	body := map[string]any{
		"household_id":    tc.householdID,
		"name":            name,
		"type":            accountType,
		"initial_balance": balance,
	}
	if err := tc.sendJSON(http.MethodPost, "/api/v1/accounts", body, http.StatusCreated, &out); err != nil {
		return err
	}
	tc.accounts[name] = out.ID
	tc.lastAccount = out.ID
	return nil
}

func theBudgetIs(ctx context.Context, categoryName, month, amount, rollover string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	categoryID, ok := tc.categories[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}
	body := map[string]any{
		"household_id": tc.householdID,
		"month":        month,
		"budgets": []map[string]any{
			{"category_id": categoryID, "amount": amount, "rollover_enabled": rollover == "enabled"},
		},
	}
	return tc.sendJSON(http.MethodPost, "/api/v1/budgets", body, http.StatusOK, nil)
}

func iSpentOn(ctx context.Context, amount, categoryName, day string) error {
	return recordTransaction(ctx, "outflow", amount, categoryName, day)
}

func iEarnedAs(ctx context.Context, amount, categoryName, day string) error {
	return recordTransaction(ctx, "inflow", amount, categoryName, day)
}

func recordTransaction(ctx context.Context, direction, amount, categoryName, day string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.lastAccount == "" {
		return fmt.Errorf("no account created in this scenario")
	}
	categoryID, ok := tc.categories[categoryName]
	if !ok {
		return fmt.Errorf("unknown category %q", categoryName)
	}
	if _, err := strconv.ParseFloat(amount, 64); err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	body := map[string]any{
		"household_id": tc.householdID,
		"account_id":   tc.lastAccount,
		"amount":       amount,
		"direction":    direction,
		"occurred_at":  day,
		"description":  categoryName,
		"categories":   []map[string]any{{"category_id": categoryID, "weight": 1}},
	}
	return tc.sendJSON(http.MethodPost, "/api/v1/transactions", body, http.StatusCreated, nil)
}
