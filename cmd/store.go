package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/xvierd/prodvana-cli/internal/domain"
)

var storeCategory string

// storeCmd groups the store commands.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse and buy upgrades with your coins",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List store items",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := app.svc.Catalog()
		if storeCategory != "" {
			items = items.ByCategory(domain.ItemCategory(storeCategory))
		}

		if jsonOutput {
			if items == nil {
				items = domain.Catalog{}
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{"items": items, "count": len(items)})
		}

		// The balance is only known once signed in.
		var wallet *domain.Wallet
		if _, err := app.svc.Owner(); err == nil {
			if wallet, err = app.svc.Wallet(cmd.Context()); err != nil {
				return err
			}
		}
		renderCatalog(cmd.OutOrStdout(), items, wallet)
		return nil
	},
}

var storeBuyCmd = &cobra.Command{
	Use:   "buy [item-id]",
	Short: "Buy a store item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureSignedIn(cmd); err != nil {
			return err
		}
		return buyItem(cmd.Context(), cmd.OutOrStdout(), args[0])
	},
}

func init() {
	storeListCmd.Flags().StringVarP(&storeCategory, "category", "c", "", "Filter by category (farm, fishing, character)")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeBuyCmd)
}

func buyItem(ctx context.Context, out io.Writer, id string) error {
	item, err := app.svc.Catalog().Find(id)
	if err != nil {
		return fmt.Errorf("%w: %s", err, id)
	}
	wallet, err := app.svc.Purchase(ctx, id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(out, map[string]any{"item": item, "wallet": wallet})
	}
	fmt.Fprintf(out, "🛒 Bought %s for %d coins. %s\n", item.Name, item.Cost, item.Bonus)
	fmt.Fprintf(out, "   %s\n", walletLine(wallet))
	return nil
}

// renderCatalog prints items grouped by category. Items the wallet cannot
// afford are dimmed.
func renderCatalog(out io.Writer, items domain.Catalog, wallet *domain.Wallet) {
	var (
		headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C6FE0"))
		costStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(app.config.Theme.ColorCoins))
		dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	)

	if len(items) == 0 {
		fmt.Fprintln(out, "No items found.")
		return
	}
	if wallet != nil {
		fmt.Fprintln(out, walletLine(wallet))
	}

	var current domain.ItemCategory
	for _, item := range items {
		if item.Category != current {
			current = item.Category
			fmt.Fprintf(out, "\n%s\n", headerStyle.Render(categoryTitle(current)))
		}
		line := fmt.Sprintf("  %-16s %-22s %s", item.ID, item.Name, costStyle.Render(fmt.Sprintf("%4d", item.Cost)))
		if wallet != nil && !wallet.CanAfford(item.Cost) {
			line = dimStyle.Render(fmt.Sprintf("  %-16s %-22s %4d", item.ID, item.Name, item.Cost))
		}
		fmt.Fprintf(out, "%s  %s\n", line, dimStyle.Render(item.Bonus))
	}
}

func categoryTitle(c domain.ItemCategory) string {
	switch c {
	case domain.CategoryFarm:
		return "Farm"
	case domain.CategoryFishing:
		return "Fishing"
	case domain.CategoryCharacter:
		return "Characters"
	default:
		return string(c)
	}
}
