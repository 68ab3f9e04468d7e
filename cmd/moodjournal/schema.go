package main

import (
	"fmt"

	"github.com/localnerve/moodjournal/internal/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type schemaColumn struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Primary  bool   `json:"primary"`
}

type schemaTable struct {
	Table   string         `json:"table"`
	Columns []schemaColumn `json:"columns"`
}

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the migrated tables and columns",
	Long:  `Inspect the schema the migrations produced on the configured database.`,
	Args:  cobra.NoArgs,
	RunE: withApp(false, func(cmd *cobra.Command, args []string, a *journalApp) error {
		migrator := a.db.Migrator()

		var tables []schemaTable
		for _, model := range []interface{}{
			&models.Mood{},
			&models.Tag{},
			&models.JournalEntry{},
			&models.EntryTag{},
			&models.AppSetting{},
			&models.Category{},
		} {
			stmt := &gorm.Statement{DB: a.db}
			if err := stmt.Parse(model); err != nil {
				return fmt.Errorf("failed to parse model: %w", err)
			}
			name := stmt.Schema.Table

			columnTypes, err := migrator.ColumnTypes(model)
			if err != nil {
				return fmt.Errorf("failed to read columns of %s: %w", name, err)
			}
			table := schemaTable{Table: name}
			for _, ct := range columnTypes {
				col := schemaColumn{Name: ct.Name(), Type: ct.DatabaseTypeName()}
				col.Nullable, _ = ct.Nullable()
				col.Primary, _ = ct.PrimaryKey()
				table.Columns = append(table.Columns, col)
			}
			tables = append(tables, table)
		}

		if done, err := printJSON(cmd, tables); done {
			return err
		}
		w := cmd.OutOrStdout()
		for _, table := range tables {
			fmt.Fprintf(w, "\n=== Table: %s ===\n", table.Table)
			for _, col := range table.Columns {
				flags := ""
				if col.Primary {
					flags += " PK"
				}
				if !col.Nullable {
					flags += " NOT NULL"
				}
				fmt.Fprintf(w, "  %-20s %s%s\n", col.Name, col.Type, flags)
			}
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
