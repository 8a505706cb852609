package certificate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingColumns(t *testing.T) {
	t.Run("role schema", func(t *testing.T) {
		v := RowValidator{Version: SchemaRole}

		assert.Empty(t, v.MissingColumns([]string{"name", "username", "pronoun", "hours", "role"}))
		assert.Equal(t, []string{"role"},
			v.MissingColumns([]string{"name", "username", "pronoun", "hours"}))
	})

	t.Run("legacy schema", func(t *testing.T) {
		v := RowValidator{Version: SchemaLegacy}

		assert.Empty(t, v.MissingColumns(
			[]string{"name", "username", "pronoun", "event", "date", "hours", "host"}))
		assert.Equal(t, []string{"event", "date", "host"},
			v.MissingColumns([]string{"name", "username", "pronoun", "hours"}))
	})

	t.Run("header matching ignores case and padding", func(t *testing.T) {
		v := RowValidator{Version: SchemaRole}

		assert.Empty(t, v.MissingColumns([]string{" Name ", "USERNAME", "Pronoun", "Hours", "Role"}))
	})
}

func TestValidateRow(t *testing.T) {
	valid := map[string]string{
		"name": "Ana Silva", "username": "ana", "pronoun": "a",
		"hours": "02h00", "role": "ouvinte",
	}

	t.Run("valid role row has no defects", func(t *testing.T) {
		v := RowValidator{Version: SchemaRole}
		assert.Empty(t, v.ValidateRow(1, valid))
	})

	t.Run("every defective column is reported", func(t *testing.T) {
		v := RowValidator{Version: SchemaRole}
		errs := v.ValidateRow(3, map[string]string{
			"name": "", "username": "ana", "pronoun": "x",
			"hours": "duas horas", "role": "",
		})

		require.Len(t, errs, 4)
		columns := make([]string, len(errs))
		for i, e := range errs {
			assert.Equal(t, 3, e.Row)
			columns[i] = e.Column
		}
		assert.ElementsMatch(t, []string{"name", "pronoun", "hours", "role"}, columns)
	})

	t.Run("role enumeration is enforced when configured", func(t *testing.T) {
		v := RowValidator{Version: SchemaRole, Roles: []string{"ouvinte", "palestrante"}}

		assert.Empty(t, v.ValidateRow(1, valid))

		row := map[string]string{
			"name": "Ana Silva", "username": "ana", "pronoun": "a",
			"hours": "02h00", "role": "organizadora",
		}
		errs := v.ValidateRow(1, row)
		require.Len(t, errs, 1)
		assert.Equal(t, "role", errs[0].Column)
	})

	t.Run("legacy row", func(t *testing.T) {
		v := RowValidator{Version: SchemaLegacy}
		row := map[string]string{
			"name": "Ana Silva", "username": "ana", "pronoun": "a",
			"event": "Semana Acadêmica", "date": "10/05/2024",
			"hours": "02h00", "host": "verdadeiro",
		}
		assert.Empty(t, v.ValidateRow(1, row))

		row["host"] = "talvez"
		row["date"] = "2024-05-10"
		errs := v.ValidateRow(1, row)
		require.Len(t, errs, 2)
		assert.ElementsMatch(t, []string{"host", "date"},
			[]string{errs[0].Column, errs[1].Column})
	})

	t.Run("legacy date may be blank", func(t *testing.T) {
		v := RowValidator{Version: SchemaLegacy}
		row := map[string]string{
			"name": "Ana Silva", "username": "ana", "pronoun": "a",
			"event": "Semana Acadêmica", "date": "",
			"hours": "02h00", "host": "falso",
		}
		assert.Empty(t, v.ValidateRow(1, row))
	})
}

func TestParseRow(t *testing.T) {
	t.Run("role schema trims and lowercases", func(t *testing.T) {
		v := RowValidator{Version: SchemaRole}
		row := v.ParseRow(2, map[string]string{
			"name": " Ana Silva ", "username": " ana ", "pronoun": " A ",
			"hours": " 02h00 ", "role": " Ouvinte ",
		})

		assert.Equal(t, 2, row.Index)
		assert.Equal(t, "Ana Silva", row.Name)
		assert.Equal(t, "ana", row.Username)
		assert.Equal(t, "a", row.Pronoun)
		assert.Equal(t, "02h00", row.Hours)
		assert.Equal(t, "Ouvinte", row.Role)
		assert.Nil(t, row.Host)
	})

	t.Run("legacy schema parses host and date", func(t *testing.T) {
		v := RowValidator{Version: SchemaLegacy}
		row := v.ParseRow(1, map[string]string{
			"name": "Ana Silva", "username": "ana", "pronoun": "a",
			"event": "Semana Acadêmica", "date": "10/05/2024",
			"hours": "02h00", "host": "Verdadeiro",
		})

		require.NotNil(t, row.Host)
		assert.True(t, *row.Host)
		assert.Equal(t, "Semana Acadêmica", row.Event)
		require.NotNil(t, row.Date)
		assert.Equal(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), *row.Date)

		negative := v.ParseRow(1, map[string]string{
			"name": "Ana Silva", "pronoun": "a", "event": "X",
			"hours": "02h00", "host": "false",
		})
		require.NotNil(t, negative.Host)
		assert.False(t, *negative.Host)
		assert.Nil(t, negative.Date)
	})
}
