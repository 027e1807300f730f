package features

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/cucumber/godog"
	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type cartTestContext struct {
	products map[string]models.Product
	store    *cart.Store
	outcome  cart.Outcome
}

func (c *cartTestContext) reset() {
	c.products = map[string]models.Product{}
	c.store = cart.New()
	c.outcome = cart.Applied
}

func (c *cartTestContext) theCatalogContains(table *godog.Table) error {
	for _, row := range table.Rows[1:] {
		price, err := decimal.NewFromString(row.Cells[2].Value)
		if err != nil {
			return err
		}
		p := models.Product{ID: row.Cells[0].Value, Name: row.Cells[1].Value, Price: price}
		c.products[p.ID] = p
	}
	return nil
}

func (c *cartTestContext) anEmptyCart() error {
	c.store = cart.New()
	return nil
}

func (c *cartTestContext) iAddProductTimes(id string, n int) error {
	p, ok := c.products[id]
	if !ok {
		return fmt.Errorf("product %q not in catalog", id)
	}
	for range n {
		c.outcome = c.store.AddToCart(p)
	}
	return nil
}

func (c *cartTestContext) iRemoveProduct(id string) error {
	c.outcome = c.store.RemoveFromCart(id)
	return nil
}

func (c *cartTestContext) iSetTheQuantityOfProductTo(id string, quantity int) error {
	c.outcome = c.store.UpdateQuantity(id, quantity)
	return nil
}

func (c *cartTestContext) iClearTheCart() error {
	c.outcome = c.store.ClearCart()
	return nil
}

func (c *cartTestContext) theOutcomeIs(want string) error {
	if c.outcome.String() != want {
		return fmt.Errorf("expected outcome %s, got %s", want, c.outcome)
	}
	return nil
}

func (c *cartTestContext) theCartHasLines(n int) error {
	if got := c.store.Snapshot().Len(); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *cartTestContext) lineHasQuantity(id string, quantity int) error {
	item, ok := c.store.Snapshot().Get(id)
	if !ok {
		return fmt.Errorf("no line for product %q", id)
	}
	if item.Quantity != quantity {
		return fmt.Errorf("expected quantity %d for %q, got %d", quantity, id, item.Quantity)
	}
	return nil
}

func (c *cartTestContext) theCartLinesAre(order string) error {
	var got []string
	for _, item := range c.store.Items() {
		got = append(got, item.ID)
	}
	if strings.Join(got, ",") != order {
		return fmt.Errorf("expected lines %s, got %s", order, strings.Join(got, ","))
	}
	return nil
}

func (c *cartTestContext) theCartTotalsItemsCosting(items int, price string) error {
	want, err := decimal.NewFromString(price)
	if err != nil {
		return err
	}
	if got := c.store.TotalItems(); got != items {
		return fmt.Errorf("expected %d items, got %d", items, got)
	}
	if got := c.store.TotalPrice(); !got.Equal(want) {
		return fmt.Errorf("expected total %s, got %s", want, got)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &cartTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the catalog contains:$`, tc.theCatalogContains)
	ctx.Step(`^an empty cart$`, tc.anEmptyCart)

	ctx.Step(`^I add product "([^"]*)" (\d+) times$`, tc.iAddProductTimes)
	ctx.Step(`^I remove product "([^"]*)"$`, tc.iRemoveProduct)
	ctx.Step(`^I set the quantity of product "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfProductTo)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)

	ctx.Step(`^the outcome is "([^"]*)"$`, tc.theOutcomeIs)
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^line "([^"]*)" has quantity (\d+)$`, tc.lineHasQuantity)
	ctx.Step(`^the cart lines are "([^"]*)"$`, tc.theCartLinesAre)
	ctx.Step(`^the cart totals (\d+) items costing (\d+)$`, tc.theCartTotalsItemsCosting)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"cart.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
