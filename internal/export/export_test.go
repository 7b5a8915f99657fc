package export

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookLayout(t *testing.T) {
	rows := []Row{
		{Label: "Salary", Amount: 5000, Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{Label: "Bonus", Amount: 250.5, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	f, err := Workbook("Income", "Source", rows)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Income")
	require.NoError(t, err)
	require.Len(t, got, len(rows)+1)
	assert.Equal(t, []string{"Source", "Amount", "Date"}, got[0])
	assert.Equal(t, []string{"Salary", "5000", "2024-01-02"}, got[1])
	assert.Equal(t, []string{"Bonus", "250.5", "2024-01-01"}, got[2])

	typ, err := f.GetCellType("Income", "C2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeNumber, typ)
	assert.NotEqual(t, excelize.CellTypeDate, typ)

	width, err := f.GetColWidth("Income", "A")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)
	width, err = f.GetColWidth("Income", "C")
	require.NoError(t, err)
	assert.Equal(t, 15.0, width)
}

func TestWorkbookEmpty(t *testing.T) {
	f, err := Workbook("Expense", "Category", nil)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Expense")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSaveTempUniqueNames(t *testing.T) {
	dir := t.TempDir()

	var (
		mu    sync.Mutex
		paths = map[string]bool{}
		wg    sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f, err := Workbook("Income", "Source", []Row{{Label: "x", Amount: 1, Date: time.Now()}})
			if !assert.NoError(t, err) {
				return
			}
			defer f.Close()

			path, err := SaveTemp(f, dir, "income_u1")
			if !assert.NoError(t, err) {
				return
			}

			mu.Lock()
			paths[path] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, paths, 8)
	for p := range paths {
		assert.Equal(t, dir, filepath.Dir(p))
		assert.True(t, strings.HasPrefix(filepath.Base(p), "income_u1_"))
		_, err := os.Stat(p)
		assert.NoError(t, err)
	}
}
