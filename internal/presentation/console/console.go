package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	appinventory "github.com/pharmatrack/pharmatrack/internal/application/inventory"
	apporder "github.com/pharmatrack/pharmatrack/internal/application/order"
	dominv "github.com/pharmatrack/pharmatrack/internal/domain/inventory"
	domorder "github.com/pharmatrack/pharmatrack/internal/domain/order"
	"github.com/pharmatrack/pharmatrack/internal/observability"
)

// ErrInvalidInput marks malformed or out-of-range operator input. It never
// reaches the application services; every raw value is validated here first.
var ErrInvalidInput = errors.New("console: invalid input")

const banner = `
===========================================================
             PharmaTrack - Inventory System
===========================================================
1. Add Item
2. Display Inventory
3. Place Order
4. Process Orders
5. Exit
-----------------------------------------------------------
`

// Console drives the interactive menu loop. It owns parsing and validation of
// raw operator input and translates service errors into printed messages; the
// loop itself never terminates on an operation failure.
type Console struct {
	in        *bufio.Scanner
	out       io.Writer
	inventory *appinventory.Service
	orders    *apporder.Service
	log       observability.Logger
}

func New(in io.Reader, out io.Writer, inventorySvc *appinventory.Service, orderSvc *apporder.Service, logger observability.Logger) *Console {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Console{
		in:        bufio.NewScanner(in),
		out:       out,
		inventory: inventorySvc,
		orders:    orderSvc,
		log:       logger.With(observability.F("component", "console")),
	}
}

// Run loops over the menu until the operator chooses Exit or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.log.Info("console_started")
	defer c.log.Info("console_stopped")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, banner)
		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.TrimSpace(choice) {
		case "1":
			c.addItem(ctx)
		case "2":
			c.displayInventory(ctx)
		case "3":
			c.placeOrder(ctx)
		case "4":
			c.processOrder(ctx)
		case "5":
			fmt.Fprintln(c.out, "Exiting...")
			return nil
		default:
			c.log.Debug("invalid_menu_choice", observability.F("choice", choice))
			fmt.Fprintln(c.out, "Invalid choice. Please try again.")
		}
	}
}

func (c *Console) addItem(ctx context.Context) {
	name, err := c.readName("Enter item name: ")
	if err != nil {
		c.inputError(err)
		return
	}
	quantity, err := c.readPositiveInt("Enter quantity: ")
	if err != nil {
		c.inputError(err)
		return
	}
	price, err := c.readPositiveFloat("Enter price: ")
	if err != nil {
		c.inputError(err)
		return
	}
	expiry, err := c.readDate("Enter expiration date (DDMMYYYY): ")
	if err != nil {
		c.inputError(err)
		return
	}

	productID, err := c.inventory.AddItem(ctx, appinventory.AddItemInput{
		Name:     name,
		Quantity: quantity,
		Price:    price,
		Expiry:   expiry,
	})
	if err != nil {
		fmt.Fprintf(c.out, "Could not add item: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Item added successfully. Product ID: %d\n", productID)
}

func (c *Console) displayInventory(ctx context.Context) {
	items, err := c.inventory.ListItems(ctx)
	if err != nil {
		fmt.Fprintf(c.out, "Could not list inventory: %v\n", err)
		return
	}

	fmt.Fprintln(c.out, "\nCurrent Inventory:")
	fmt.Fprintln(c.out, "-----------------------------------------------------------")
	fmt.Fprintf(c.out, "%5s %15s %12s %10s %15s\n", "ID", "Name", "Quantity", "Price", "Exp Date")
	fmt.Fprintln(c.out, "-----------------------------------------------------------")
	for _, item := range items {
		fmt.Fprintf(c.out, "%5d %15s %12d %10s %15s\n",
			item.ProductID,
			item.Name,
			item.Quantity,
			strconv.FormatFloat(item.Price, 'g', -1, 64),
			item.Expiry,
		)
	}
}

func (c *Console) placeOrder(ctx context.Context) {
	customer, err := c.readName("Enter customer name: ")
	if err != nil {
		c.inputError(err)
		return
	}
	productID, err := c.readInt("Enter product ID: ")
	if err != nil {
		c.inputError(err)
		return
	}
	quantity, err := c.readPositiveInt("Enter quantity: ")
	if err != nil {
		c.inputError(err)
		return
	}
	urgency, err := c.readUrgency("Enter order urgency (1 - Low, 2 - Medium, 3 - High): ")
	if err != nil {
		c.inputError(err)
		return
	}

	_, err = c.orders.PlaceOrder(ctx, apporder.PlaceOrderInput{
		CustomerName: customer,
		ProductID:    productID,
		Quantity:     quantity,
		Urgency:      urgency,
	})
	switch {
	case err == nil:
		fmt.Fprintln(c.out, "Order placed successfully.")
	case errors.Is(err, dominv.ErrNotFound):
		fmt.Fprintln(c.out, "Product not found in inventory.")
	case errors.Is(err, dominv.ErrExpired):
		fmt.Fprintln(c.out, "Product expired. Cannot place order.")
	case errors.Is(err, dominv.ErrInsufficientStock):
		fmt.Fprintln(c.out, "Requested quantity exceeds available stock.")
	default:
		fmt.Fprintf(c.out, "Could not place order: %v\n", err)
	}
}

func (c *Console) processOrder(ctx context.Context) {
	result, err := c.orders.ProcessNextOrder(ctx)
	if errors.Is(err, domorder.ErrEmptyQueue) {
		fmt.Fprintln(c.out, "No orders to process.")
		return
	}
	if result == nil {
		fmt.Fprintf(c.out, "Could not process order: %v\n", err)
		return
	}

	fmt.Fprintf(c.out, "Processing order for customer: %s\n", result.Order.CustomerName)
	switch {
	case result.Fulfilled:
		fmt.Fprintln(c.out, "Order processed successfully.")
	case errors.Is(err, dominv.ErrNotFound):
		fmt.Fprintln(c.out, "Product not found in inventory.")
	case errors.Is(err, dominv.ErrInsufficientStock):
		fmt.Fprintln(c.out, "Insufficient stock. Order cannot be fulfilled.")
	default:
		fmt.Fprintf(c.out, "Order could not be fulfilled: %v\n", err)
	}
}

func (c *Console) inputError(err error) {
	if errors.Is(err, io.EOF) {
		return
	}
	fmt.Fprintf(c.out, "%v\n", err)
}

func (c *Console) readLine(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// readName accepts a single non-empty token. Whitespace is rejected because
// the flat-file format is whitespace separated.
func (c *Console) readName(prompt string) (string, error) {
	s, err := c.readLine(prompt)
	if err != nil {
		return "", err
	}
	if s == "" || strings.ContainsAny(s, " \t") {
		return "", fmt.Errorf("%w: name must be a single word", ErrInvalidInput)
	}
	return s, nil
}

func (c *Console) readInt(prompt string) (int64, error) {
	s, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, s)
	}
	return n, nil
}

func (c *Console) readPositiveInt(prompt string) (int, error) {
	n, err := c.readInt(prompt)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: quantity must be greater than zero", ErrInvalidInput)
	}
	return int(n), nil
}

func (c *Console) readPositiveFloat(prompt string) (float64, error) {
	s, err := c.readLine(prompt)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("%w: price must be a positive number", ErrInvalidInput)
	}
	return f, nil
}

func (c *Console) readDate(prompt string) (dominv.Date, error) {
	s, err := c.readLine(prompt)
	if err != nil {
		return "", err
	}
	d, err := dominv.ParseDate(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return d, nil
}

func (c *Console) readUrgency(prompt string) (domorder.Urgency, error) {
	n, err := c.readInt(prompt)
	if err != nil {
		return 0, err
	}
	u := domorder.Urgency(n)
	if !u.Valid() {
		return 0, fmt.Errorf("%w: urgency must be between 1 and 3", ErrInvalidInput)
	}
	return u, nil
}
