package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"campus-market/internal/api"
	"campus-market/internal/client"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// 互動輸入，測試時替換
var (
	readPassword = func(prompt string) ([]byte, error) {
		rl, err := newReadline(prompt)
		if err != nil {
			return nil, err
		}
		defer rl.Close()
		return rl.ReadPassword(prompt)
	}
	readLine = func(prompt string) (string, error) {
		rl, err := newReadline(prompt)
		if err != nil {
			return "", err
		}
		defer rl.Close()
		return rl.Readline()
	}
)

func newReadline(prompt string) (*readline.Instance, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return rl, nil
}

type app struct {
	apiURL    string
	configDir string
	session   *client.Session
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "market",
		Short:         "Campus marketplace client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.session != nil {
				a.session.Notifier().Wait()
			}
		},
	}
	defaultURL := os.Getenv("MARKET_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVar(&a.apiURL, "api", defaultURL, "API base URL (MARKET_API_URL)")
	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "identity directory (MARKET_CONFIG_DIR)")

	root.AddCommand(
		a.healthCmd(),
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.whoamiCmd(),
		a.productsCmd(),
		a.sellCmd(),
		a.buyCmd(),
		a.myProductsCmd(),
		a.myTransactionsCmd(),
	)
	return root
}

func (a *app) init() error {
	dir := a.configDir
	if dir == "" {
		d, err := client.DefaultConfigDir()
		if err != nil {
			return err
		}
		dir = d
	}
	notes := client.NewNotifier(func(n client.Notification) {
		fmt.Fprintf(stdout, "[%s] %s\n", n.Severity, n.Message)
	})
	a.session = client.NewSession(client.New(a.apiURL, nil), client.NewFileStore(dir), notes)
	a.session.Resume()
	return nil
}

// promptPassword flag 沒給時以 readline 讀取
func promptPassword(given, prompt string) (string, error) {
	if given != "" {
		return given, nil
	}
	b, err := readPassword(prompt)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func promptLine(given, prompt string) (string, error) {
	if given != "" {
		return given, nil
	}
	line, err := readLine(prompt)
	return strings.TrimSpace(line), err
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.session.Health(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "%s (%s) %s\n", h.Status, h.Environment, h.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
			return nil
		},
	}
}

func (a *app) registerCmd() *cobra.Command {
	var f client.RegisterForm
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if f.Password, err = promptPassword(f.Password, "Password: "); err != nil {
				return err
			}
			if f.ConfirmPassword == "" {
				if f.ConfirmPassword, err = promptPassword("", "Confirm password: "); err != nil {
					return err
				}
			}
			_, err = a.session.Register(cmd.Context(), f)
			return err
		},
	}
	cmd.Flags().StringVar(&f.StudentID, "student-id", "", "student ID")
	cmd.Flags().StringVar(&f.Name, "name", "", "full name")
	cmd.Flags().StringVar(&f.PhoneNumber, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.Password, "password", "", "password (prompted when empty)")
	cmd.Flags().StringVar(&f.ConfirmPassword, "confirm-password", "", "password confirmation (prompted when empty)")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var f client.LoginForm
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and remember the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if f.Password, err = promptPassword(f.Password, "Password: "); err != nil {
				return err
			}
			st, err := a.session.Login(cmd.Context(), f)
			if err != nil {
				return err
			}
			client.RenderProducts(stdout, st.MyProducts, true)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.StudentID, "student-id", "", "student ID")
	cmd.Flags().StringVar(&f.Password, "password", "", "password (prompted when empty)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.session.Logout(cmd.Context())
			if err != nil {
				return err
			}
			client.RenderProducts(stdout, st.Products, false)
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			client.RenderUser(stdout, a.session.State().User)
			return nil
		},
	}
}

func (a *app) productsCmd() *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:   "products",
		Short: "List available products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.session.SelectCategory(cmd.Context(), category)
			if err != nil {
				return err
			}
			client.RenderProducts(stdout, st.Products, st.LoggedIn())
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", api.CategoryAll,
		"all, "+strings.Join(api.Categories, ", "))
	return cmd
}

func (a *app) sellCmd() *cobra.Command {
	var f client.ProductForm
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "List a product for sale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.session.AddProduct(cmd.Context(), f)
			if err != nil {
				return err
			}
			client.RenderProducts(stdout, st.MyProducts, true)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.Title, "title", "", "title")
	cmd.Flags().StringVar(&f.Description, "description", "", "description")
	cmd.Flags().StringVar(&f.Price, "price", "", "price in ZMW")
	cmd.Flags().StringVar(&f.Category, "category", "", strings.Join(api.Categories, ", "))
	cmd.Flags().StringVar(&f.PhoneNumber, "phone", "", "contact phone")
	cmd.Flags().StringVar(&f.Image, "image", "", "image file (jpeg, jpg, png, gif)")
	return cmd
}

func (a *app) buyCmd() *cobra.Command {
	var f client.PurchaseForm
	cmd := &cobra.Command{
		Use:   "buy <product-id>",
		Short: "Start a mobile money purchase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			if !a.session.State().LoggedIn() {
				_, err := a.session.ConfirmPurchase(cmd.Context(), client.Confirmation{}, f)
				return err
			}
			if _, err := a.session.SelectCategory(cmd.Context(), api.CategoryAll); err != nil {
				return err
			}
			conf, err := a.session.PreparePurchase(id)
			if err != nil {
				return err
			}
			client.RenderConfirmation(stdout, conf)
			if f.BuyerPhone, err = promptLine(f.BuyerPhone, "Your phone number: "); err != nil {
				return err
			}
			_, err = a.session.ConfirmPurchase(cmd.Context(), conf, f)
			return err
		},
	}
	cmd.Flags().StringVar(&f.BuyerPhone, "phone", "", "your phone number (prompted when empty)")
	return cmd
}

func (a *app) myProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-products",
		Short: "List your products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showTab(cmd.Context(), client.TabMyProducts)
		},
	}
}

func (a *app) myTransactionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "my-transactions",
		Short: "List your transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.showTab(cmd.Context(), client.TabMyTransactions)
		},
	}
}

func (a *app) showTab(ctx context.Context, tab client.Tab) error {
	if !a.session.State().LoggedIn() {
		fmt.Fprintln(stdout, client.MsgLoginFirst)
		return client.ErrNotLoggedIn
	}
	st, err := a.session.SelectTab(ctx, tab)
	if err != nil {
		return err
	}
	if tab == client.TabMyTransactions {
		client.RenderTransactions(stdout, st.Transactions)
		return nil
	}
	client.RenderProducts(stdout, st.MyProducts, true)
	return nil
}
