package ingest

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logsviewer/internal/activity/models"
	"logsviewer/pkg/platform/sentinel"
)

const header = "id,user_id,action,category,cat_id,date\n"

func TestParse(t *testing.T) {
	t.Run("rows are returned in source order", func(t *testing.T) {
		csvText := header +
			"1,4,\"Fawzy, changed status active\",Orders,9,2024-01-01\n" +
			"2,5,\"Aya, added lesson\",Courses,3,2024-01-02\n" +
			"3,6,Aml,Users,7,2024-01-03\n"

		result, err := Parse(csvText)
		require.NoError(t, err)
		require.Len(t, result.Records, 3)
		assert.Empty(t, result.Malformed)

		assert.Equal(t, models.RawRecord{
			ID:         "1",
			UserID:     "4",
			Action:     "Fawzy, changed status active",
			Category:   "Orders",
			CategoryID: "9",
			Date:       "2024-01-01",
		}, result.Records[0])
		assert.Equal(t, "2", result.Records[1].ID)
		assert.Equal(t, "3", result.Records[2].ID)
	})

	t.Run("empty lines are skipped", func(t *testing.T) {
		csvText := header + "\n1,4,a,b,c,d\n\n\n2,4,a,b,c,d\n\n"

		result, err := Parse(csvText)
		require.NoError(t, err)
		assert.Len(t, result.Records, 2)
		assert.Empty(t, result.Malformed)
	})

	t.Run("rows with wrong column count are dropped", func(t *testing.T) {
		csvText := header +
			"1,4,a,b,c,d\n" +
			"2,4,a\n" +
			"3,4,a,b,c,d,extra\n" +
			"4,4,a,b,c,d\n"

		result, err := Parse(csvText)
		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "1", result.Records[0].ID)
		assert.Equal(t, "4", result.Records[1].ID)

		require.Len(t, result.Malformed, 2)
		assert.Equal(t, 3, result.Malformed[0].Line)
		assert.Equal(t, 3, result.Malformed[0].Fields)
		assert.Equal(t, 4, result.Malformed[1].Line)
		assert.True(t, errors.Is(result.Malformed[0], ErrMalformedRow))
	})

	t.Run("quoting errors drop only the offending row", func(t *testing.T) {
		csvText := header +
			"1,4,a\"b,c,9,d\n" +
			"2,4,a,b,c,d\n"

		result, err := Parse(csvText)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "2", result.Records[0].ID)
		require.Len(t, result.Malformed, 1)
		assert.Equal(t, 2, result.Malformed[0].Line)
	})

	t.Run("columns are mapped by name", func(t *testing.T) {
		csvText := "date,cat_id,note,category,action,user_id,id\n" +
			"2024-02-02,11,ignored,Orders,\"Lina, paid invoice\",12,77\n"

		result, err := Parse(csvText)
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, models.RawRecord{
			ID:         "77",
			UserID:     "12",
			Action:     "Lina, paid invoice",
			Category:   "Orders",
			CategoryID: "11",
			Date:       "2024-02-02",
		}, result.Records[0])
	})

	t.Run("missing header column fails", func(t *testing.T) {
		_, err := Parse("id,user_id,action,category,date\n1,2,3,4,5\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMissingColumns)
		assert.ErrorIs(t, err, sentinel.ErrInvalidInput)
		assert.Contains(t, err.Error(), "cat_id")
	})

	t.Run("empty input yields no records", func(t *testing.T) {
		result, err := Parse("")
		require.NoError(t, err)
		assert.Empty(t, result.Records)
	})

	t.Run("header only yields no records", func(t *testing.T) {
		result, err := Parse(header)
		require.NoError(t, err)
		assert.Empty(t, result.Records)
	})

	t.Run("leading byte order mark is ignored", func(t *testing.T) {
		result, err := Parse("\ufeff" + header + "1,4,a,b,c,d\n")
		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "1", result.Records[0].ID)
	})

	t.Run("CRLF line endings", func(t *testing.T) {
		csvText := strings.ReplaceAll(header+"1,4,a,b,c,d\n2,4,a,b,c,d\n", "\n", "\r\n")
		result, err := Parse(csvText)
		require.NoError(t, err)
		require.Len(t, result.Records, 2)
		assert.Equal(t, "d", result.Records[1].Date)
	})
}

func TestParseReturnsEveryValidRow(t *testing.T) {
	for _, n := range []int{0, 1, 19, 20, 21, 85, 250} {
		t.Run(fmt.Sprintf("%d rows", n), func(t *testing.T) {
			var b strings.Builder
			b.WriteString(header)
			for i := 0; i < n; i++ {
				fmt.Fprintf(&b, "%d,%d,\"Actor %d, did thing %d\",Cat,%d,2024-01-%02d\n", i, i%10, i, i, i%7, i%28+1)
			}

			result, err := Parse(b.String())
			require.NoError(t, err)
			require.Len(t, result.Records, n)
			for i, rec := range result.Records {
				assert.Equal(t, fmt.Sprint(i), rec.ID)
			}
		})
	}
}
