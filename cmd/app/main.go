package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"futures_go/internal/app"
	"futures_go/internal/execution"
	"futures_go/internal/infra"
)

const usage = `Binance Futures Testnet trading client.

Usage:
  app <command> [flags]

Commands:
  order        Place a new order
  cancel       Cancel an existing order
  price        Get the current price for a symbol
  status       Show the details of one order
  account      Show account balances
  positions    Show open positions
  open-orders  Show open orders
  symbol-info  Show the trading rules for a symbol
  time         Show the exchange server time

Examples:
  app order -symbol BTCUSDT -side BUY -type MARKET -quantity 0.001
  app order -symbol BTCUSDT -side SELL -type LIMIT -quantity 0.001 -price 50000
  app order -symbol BTCUSDT -side SELL -type STOP_MARKET -quantity 0.001 -stop-price 45000
  app price -symbol BTCUSDT

Environment:
  BINANCE_API_KEY     Binance testnet API key
  BINANCE_API_SECRET  Binance testnet API secret
`

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	// An interrupt during the network wait aborts the invocation with a
	// distinct exit status.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	boot := app.NewBootstrap()
	if err := boot.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		return 1
	}
	defer boot.Close()

	var code int
	switch os.Args[1] {
	case "order":
		infra.PrintBanner(boot.Config)
		code = cmdOrder(ctx, boot, os.Args[2:])
	case "cancel":
		code = cmdCancel(ctx, boot, os.Args[2:])
	case "price":
		code = cmdPrice(ctx, boot, os.Args[2:])
	case "account":
		code = cmdAccount(ctx, boot)
	case "positions":
		code = cmdPositions(ctx, boot, os.Args[2:])
	case "status":
		code = cmdStatus(ctx, boot, os.Args[2:])
	case "open-orders":
		code = cmdOpenOrders(ctx, boot, os.Args[2:])
	case "symbol-info":
		code = cmdSymbolInfo(ctx, boot, os.Args[2:])
	case "time":
		code = cmdTime(ctx, boot)
	case "help", "-h", "--help":
		fmt.Print(usage)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		return 2
	}

	if ctx.Err() != nil {
		slog.Warn("Interrupted")
		return 130
	}
	return code
}

func cmdOrder(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("order", flag.ExitOnError)
	var raw execution.RawOrder
	var dryRun bool
	fs.StringVar(&raw.Symbol, "symbol", "", "trading pair symbol (e.g. BTCUSDT)")
	fs.StringVar(&raw.Side, "side", "", "order side: BUY or SELL")
	fs.StringVar(&raw.Type, "type", "", "order type: MARKET, LIMIT, ...")
	fs.StringVar(&raw.Quantity, "quantity", "", "order quantity")
	fs.StringVar(&raw.Price, "price", "", "order price (required for LIMIT)")
	fs.StringVar(&raw.StopPrice, "stop-price", "", "stop trigger price")
	fs.StringVar(&raw.TimeInForce, "time-in-force", "", "GTC, IOC, FOK or GTX")
	fs.BoolVar(&raw.ReduceOnly, "reduce-only", false, "only reduce an existing position")
	fs.StringVar(&raw.ClientOrderID, "client-order-id", "", "custom client order id")
	fs.BoolVar(&dryRun, "dry-run", false, "validate and simulate without sending")
	fs.Parse(args)

	exchange, cleanup, err := boot.NewExchange(dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer cleanup()

	svc := execution.NewOrderService(exchange, boot.Logger)
	result := svc.PlaceOrder(ctx, raw)
	fmt.Println(result)

	if !result.Success {
		return 1
	}
	return 0
}

func cmdCancel(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	symbol := fs.String("symbol", "", "trading pair symbol")
	orderID := fs.Int64("order-id", 0, "exchange order id")
	clientOrderID := fs.String("client-order-id", "", "client order id")
	fs.Parse(args)

	exchange, cleanup, err := boot.NewExchange(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer cleanup()

	svc := execution.NewOrderService(exchange, boot.Logger)
	result := svc.CancelOrder(ctx, *symbol, *orderID, *clientOrderID)
	if !result.Success {
		fmt.Printf("❌ Cancel failed: %s\n", result.Error)
		return 1
	}

	fmt.Printf("✅ Order cancelled: id=%d symbol=%s status=%s\n",
		result.Response.OrderID, result.Response.Symbol, result.Response.Status)
	return 0
}

func cmdPrice(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("price", flag.ExitOnError)
	symbol := fs.String("symbol", "", "trading pair symbol")
	fs.Parse(args)

	exchange, cleanup, err := boot.NewExchange(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer cleanup()

	svc := execution.NewOrderService(exchange, boot.Logger)
	price, ok := svc.CurrentPrice(ctx, *symbol)
	if !ok {
		fmt.Printf("❌ Could not fetch price for %s\n", *symbol)
		return 1
	}

	fmt.Printf("💰 %s: %s\n", *symbol, price)
	return 0
}

func cmdAccount(ctx context.Context, boot *app.Bootstrap) int {
	client, err := boot.NewRESTClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	info, err := client.AccountInfo(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Println("📊 ACCOUNT")
	fmt.Printf("  Total wallet balance : %s\n", info.TotalWalletBalance)
	fmt.Printf("  Unrealized PnL       : %s\n", info.TotalUnrealizedProfit)
	fmt.Printf("  Available balance    : %s\n", info.AvailableBalance)

	for _, b := range app.MapBalances(info) {
		fmt.Printf("  %-6s wallet=%s available=%s upnl=%s\n",
			b.Asset, b.WalletBalance, b.AvailableBalance, b.UnrealizedProfit)
	}
	return 0
}

func cmdPositions(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("positions", flag.ExitOnError)
	symbol := fs.String("symbol", "", "filter by symbol (optional)")
	fs.Parse(args)

	client, err := boot.NewRESTClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	risks, err := client.PositionRisk(ctx, *symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	positions := app.MapPositions(risks)
	if len(positions) == 0 {
		fmt.Println("No open positions")
		return 0
	}

	fmt.Println("📈 POSITIONS")
	for _, p := range positions {
		side := "LONG"
		if p.IsShort() {
			side = "SHORT"
		}
		fmt.Printf("  %-12s %-5s amt=%s entry=%s mark=%s upnl=%s lev=%dx\n",
			p.Symbol, side, p.PositionAmt, p.EntryPrice, p.MarkPrice, p.UnrealizedProfit, p.Leverage)
	}
	return 0
}

func cmdOpenOrders(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("open-orders", flag.ExitOnError)
	symbol := fs.String("symbol", "", "filter by symbol (optional)")
	fs.Parse(args)

	client, err := boot.NewRESTClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	orders, err := client.OpenOrders(ctx, *symbol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if len(orders) == 0 {
		fmt.Println("No open orders")
		return 0
	}

	fmt.Println("📋 OPEN ORDERS")
	for _, o := range orders {
		fmt.Printf("  #%-12d %-12s %-4s %-12s qty=%s price=%s status=%s\n",
			o.OrderID, o.Symbol, o.Side, o.Type, o.OrigQty, o.Price, o.Status)
	}
	return 0
}

func cmdStatus(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	symbol := fs.String("symbol", "", "trading pair symbol")
	orderID := fs.Int64("order-id", 0, "exchange order id")
	clientOrderID := fs.String("client-order-id", "", "client order id")
	fs.Parse(args)

	client, err := boot.NewRESTClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	o, err := client.GetOrder(ctx, *symbol, *orderID, *clientOrderID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("📋 Order #%d (%s)\n", o.OrderID, o.ClientOrderID)
	fmt.Printf("  %s %s %s qty=%s executed=%s price=%s avg=%s status=%s\n",
		o.Symbol, o.Side, o.Type, o.OrigQty, o.ExecutedQty, o.Price, o.AvgPrice, o.Status)
	return 0
}

func cmdSymbolInfo(ctx context.Context, boot *app.Bootstrap, args []string) int {
	fs := flag.NewFlagSet("symbol-info", flag.ExitOnError)
	symbol := fs.String("symbol", "", "trading pair symbol")
	fs.Parse(args)

	client, err := boot.NewRESTClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	info, err := client.SymbolInfo(ctx, strings.ToUpper(*symbol))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if info == nil {
		fmt.Printf("Symbol %s is not listed\n", *symbol)
		return 1
	}

	fmt.Printf("ℹ️  %s (%s/%s) status=%s pricePrecision=%d quantityPrecision=%d\n",
		info.Symbol, info.BaseAsset, info.QuoteAsset, info.Status,
		info.PricePrecision, info.QuantityPrecision)
	return 0
}

func cmdTime(ctx context.Context, boot *app.Bootstrap) int {
	client, err := boot.NewRESTClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer client.Close()

	st, err := client.ServerTime(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	fmt.Printf("🕒 Server time: %s (%d)\n", time.UnixMilli(st.ServerTime).UTC().Format(time.RFC3339), st.ServerTime)
	return 0
}
