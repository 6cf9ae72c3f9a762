package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/safeprag/internal/models"
	"github.com/example/safeprag/internal/ports/secondary"
	"github.com/example/safeprag/internal/wire"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the company profile, client roster, and products",
}

var catalogCompanyCmd = &cobra.Command{
	Use:   "company [name]",
	Short: "Set the company profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		document, _ := cmd.Flags().GetString("document")
		address, _ := cmd.Flags().GetString("address")
		phone, _ := cmd.Flags().GetString("phone")

		company := models.Company{Name: args[0], Document: document, Address: address, Phone: phone}
		if err := writeCatalogValue(secondary.KeyCompany, company); err != nil {
			return fmt.Errorf("failed to save company profile: %w", err)
		}
		fmt.Printf("✓ Company profile set: %s\n", company.Name)
		return nil
	},
}

var catalogClientAddCmd = &cobra.Command{
	Use:   "client-add [name]",
	Short: "Add a client to the roster",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		code, _ := cmd.Flags().GetString("code")
		branch, _ := cmd.Flags().GetString("branch")
		address, _ := cmd.Flags().GetString("address")
		phone, _ := cmd.Flags().GetString("phone")

		clients, err := wire.CatalogRepository().GetClients(ctx)
		if err != nil {
			return fmt.Errorf("failed to read roster: %w", err)
		}

		client := &models.Client{
			ID:      nextCatalogID(clientIDs(clients)),
			Code:    code,
			Name:    args[0],
			Branch:  branch,
			Address: address,
			Phone:   phone,
		}
		clients = append(clients, client)
		if err := writeCatalogValue(secondary.KeyClients, clients); err != nil {
			return fmt.Errorf("failed to save roster: %w", err)
		}

		fmt.Printf("✓ Added client %s: %s\n", client.ID, client.Name)
		return nil
	},
}

var catalogClientListCmd = &cobra.Command{
	Use:   "clients",
	Short: "List the client roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		clients, err := wire.CatalogRepository().GetClients(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read roster: %w", err)
		}
		if len(clients) == 0 {
			fmt.Println("No clients in the roster.")
			return nil
		}
		for _, c := range clients {
			fmt.Printf("%s: %s", c.ID, c.Name)
			if c.Branch != "" {
				fmt.Printf(" (%s)", c.Branch)
			}
			fmt.Println()
		}
		return nil
	},
}

var catalogProductAddCmd = &cobra.Command{
	Use:   "product-add [name]",
	Short: "Add a chemical product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		ingredient, _ := cmd.Flags().GetString("active-ingredient")
		registration, _ := cmd.Flags().GetString("registration")
		batch, _ := cmd.Flags().GetString("batch")

		products, err := wire.CatalogRepository().GetProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to read products: %w", err)
		}

		product := &models.Product{
			ID:               nextCatalogID(productIDs(products)),
			Name:             args[0],
			ActiveIngredient: ingredient,
			Registration:     registration,
			Batch:            batch,
		}
		products = append(products, product)
		if err := writeCatalogValue(secondary.KeyProducts, products); err != nil {
			return fmt.Errorf("failed to save products: %w", err)
		}

		fmt.Printf("✓ Added product %s: %s\n", product.ID, product.Name)
		return nil
	},
}

var catalogProductListCmd = &cobra.Command{
	Use:   "products",
	Short: "List chemical products",
	RunE: func(cmd *cobra.Command, args []string) error {
		products, err := wire.CatalogRepository().GetProducts(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read products: %w", err)
		}
		if len(products) == 0 {
			fmt.Println("No products registered.")
			return nil
		}
		for _, p := range products {
			fmt.Printf("%s: %s", p.ID, p.Name)
			if p.ActiveIngredient != "" {
				fmt.Printf(" [%s]", p.ActiveIngredient)
			}
			fmt.Println()
		}
		return nil
	},
}

func writeCatalogValue(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return wire.Store().Set(context.Background(), key, string(data))
}

func clientIDs(clients []*models.Client) []string {
	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = c.ID
	}
	return ids
}

func productIDs(products []*models.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

// nextCatalogID assigns sequential numeric ids, skipping anything
// non-numeric.
func nextCatalogID(ids []string) string {
	max := 0
	for _, id := range ids {
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

func init() {
	catalogCompanyCmd.Flags().String("document", "", "Company registration document (CNPJ)")
	catalogCompanyCmd.Flags().String("address", "", "Company address")
	catalogCompanyCmd.Flags().String("phone", "", "Company phone")

	catalogClientAddCmd.Flags().String("code", "", "Client code")
	catalogClientAddCmd.Flags().String("branch", "", "Client branch")
	catalogClientAddCmd.Flags().String("address", "", "Client address")
	catalogClientAddCmd.Flags().String("phone", "", "Client phone")

	catalogProductAddCmd.Flags().String("active-ingredient", "", "Active ingredient")
	catalogProductAddCmd.Flags().String("registration", "", "Health-agency registration")
	catalogProductAddCmd.Flags().String("batch", "", "Batch number")

	catalogCmd.AddCommand(catalogCompanyCmd)
	catalogCmd.AddCommand(catalogClientAddCmd)
	catalogCmd.AddCommand(catalogClientListCmd)
	catalogCmd.AddCommand(catalogProductAddCmd)
	catalogCmd.AddCommand(catalogProductListCmd)
}

// CatalogCmd returns the catalog command
func CatalogCmd() *cobra.Command {
	return catalogCmd
}
