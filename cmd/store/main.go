// Command store runs the interactive storefront terminal. It drives the same
// catalog and checkout domain as the HTTP API, one shopper at a time.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/ghuser/storefront/pkg/config"
	"github.com/ghuser/storefront/pkg/logger"
	catalogmodels "github.com/ghuser/storefront/services/catalog/domain/models"
	"github.com/ghuser/storefront/services/catalog/infrastructure/seed"
	checkoutdomain "github.com/ghuser/storefront/services/checkout/domain"
	checkoutmodels "github.com/ghuser/storefront/services/checkout/domain/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Keep prompts clean: the structured logger only surfaces warnings.
	cfg.LogLevel = "warn"
	log := logger.New(cfg)

	c := &cli{
		store:    seed.DefaultCatalog(),
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		ceiling:  cfg.UnlimitedOrderCeiling,
		idLength: cfg.OrderIDLength,
		log:      log,
	}
	c.run()
}

// cli drives one shopper's session over stdin/stdout.
type cli struct {
	store    *catalogmodels.Store
	in       *bufio.Scanner
	out      io.Writer
	ceiling  int
	idLength int
	log      logger.Logger
	eof      bool
}

func (c *cli) run() {
	fmt.Fprintln(c.out, "Welcome to our store! We are delighted to have you here.")
	fmt.Fprintln(c.out, "Start exploring our wide range of products and enjoy your shopping experience.")

	for {
		c.printMenu()
		choice := c.prompt("\nPlease choose a number (1, 2, 3 or 4):>")
		if c.eof {
			return
		}
		switch choice {
		case "1":
			c.listProducts()
		case "2":
			c.showTotalQuantity()
		case "3":
			c.placeOrder()
		case "4":
			fmt.Fprintln(c.out, "Thank you for shopping with us, Wish you a fantastic day!"+
				" We look forward to serving you again in the future.")
			return
		default:
			fmt.Fprintln(c.out, "\n  Please provide a valid input. Only values of 1, 2, 3, or 4 are allowed.")
		}
	}
}

func (c *cli) printMenu() {
	fmt.Fprintln(c.out, "\n   Store Menu")
	fmt.Fprintln(c.out, "   ----------")
	fmt.Fprintln(c.out, " 1. List all products in store")
	fmt.Fprintln(c.out, " 2. Show total amount in store")
	fmt.Fprintln(c.out, " 3. Make an order")
	fmt.Fprintln(c.out, " 4. Quit")
}

// listProducts prints the active products with their 1-based order numbers.
func (c *cli) listProducts() []*catalogmodels.Product {
	products, count := c.store.ListActive()
	fmt.Fprintln(c.out, "\n------- Available Items -------")
	for i, p := range products {
		fmt.Fprintf(c.out, "%d. %s, Price: $%g, Quantity: %s\n", i+1, p.Name(), p.Price(), p.DisplayQuantity())
	}
	switch count {
	case 0:
		fmt.Fprintln(c.out, "--- No categories were found! ---")
	case 1:
		fmt.Fprintln(c.out, "--- 1 category was found! ---")
	default:
		fmt.Fprintf(c.out, "--- %d categories were found! ---\n", count)
	}
	return products
}

func (c *cli) showTotalQuantity() {
	fmt.Fprintf(c.out, "\nTotal of %d items in store\n", c.store.TotalQuantity())
}

// placeOrder walks the shopper through building an order: pick an item by
// number, give a quantity, repeat. Empty input finishes the order, 0 cancels
// it. Every rejected input re-prompts with the reason.
func (c *cli) placeOrder() {
	products := c.listProducts()
	if len(products) == 0 {
		fmt.Fprintln(c.out, "--- Currently, there are no items available for sale in the store."+
			" Please visit us again later! ---")
		return
	}

	fmt.Fprintln(c.out, "\nEnter the number of the item you want to order (or 0 to cancel)")
	fmt.Fprintln(c.out, "To proceed with the checkout, simply input an empty text.")

	builder := checkoutmodels.NewBuilder(c.store,
		checkoutmodels.WithPolicyCeiling(c.ceiling),
		checkoutmodels.WithIDGenerator(checkoutmodels.RandomIDGenerator{Length: c.idLength}),
	)

selecting:
	for builder.State() == checkoutmodels.StateSelecting {
		input := c.prompt("Which product # do you want? ")
		switch input {
		case "":
			builder.Finish()
			continue
		case "0":
			builder.Cancel()
			continue
		}

		index, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(c.out, "\n*** Sorry, the option %s is invalid. Try again! ***\n\n", input)
			continue
		}
		if err := builder.Select(index); err != nil {
			fmt.Fprintf(c.out, "\n*** Sorry, the option %s is invalid. Try again! ***\n\n", input)
			continue
		}

		for builder.State() == checkoutmodels.StateQuantifying {
			input := c.prompt("What amount do you want? ")
			switch input {
			case "":
				builder.Finish()
				continue selecting
			case "0":
				builder.Cancel()
				continue selecting
			}

			quantity, err := strconv.Atoi(input)
			if err != nil {
				fmt.Fprintf(c.out, "\n*** Sorry, the option %s is invalid. Maximum available quantity is (%d) Try again! ***\n\n",
					input, builder.Allowance())
				continue
			}

			name := builder.Selected().Name()
			if err := builder.RequestQuantity(quantity); err != nil {
				c.reportQuantityError(err, input, name, builder.Allowance())
				continue
			}
			fmt.Fprintf(c.out, "  <---- You have successfully added %d of %s to your order. ---->\n\n", quantity, name)
			continue selecting
		}
	}

	if builder.State() == checkoutmodels.StateCancelled {
		fmt.Fprintln(c.out, "--- Order cancelled ----")
		return
	}

	receipt, err := builder.Commit()
	if err != nil {
		c.log.Error("order commit failed", "error", err)
		fmt.Fprintln(c.out, "--- Sorry, we could not complete your order. ---")
		return
	}
	if receipt == nil {
		fmt.Fprintln(c.out, "--- Order cancelled ----")
		return
	}

	fmt.Fprintln(c.out, "--- Order confirmed ---")
	fmt.Fprintln(c.out, "You have purchased the following items:")
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, receipt.Summary())
	for _, name := range receipt.SoldOut {
		fmt.Fprintf(c.out, "The %s is currently out of stock.\n", name)
		fmt.Fprintf(c.out, "%s item is deactivated!\n", name)
	}
}

func (c *cli) reportQuantityError(err error, input, name string, allowance int) {
	switch {
	case errors.Is(err, checkoutdomain.ErrLimitExceeded):
		fmt.Fprintf(c.out, "\n*** The %s is limited per order. You can still add (%d) Try again! ***\n\n",
			name, allowance)
	default:
		fmt.Fprintf(c.out, "\n*** Sorry, the option %s is invalid. Maximum available quantity is (%d) Try again! ***\n\n",
			input, allowance)
	}
}

// prompt prints the given text and returns the trimmed next input line.
// EOF reads as an empty line, which the order loop treats as "finish".
func (c *cli) prompt(text string) string {
	fmt.Fprint(c.out, text)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(strings.ToLower(c.in.Text()))
}
