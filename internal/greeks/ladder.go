package greeks

import (
	"sync"

	"github.com/shopspring/decimal"

	"optionlab/internal/models"
	"optionlab/internal/performance"
)

// LadderRow holds the sensitivities of one strike in a ladder.
type LadderRow struct {
	Strike decimal.Decimal
	Delta  decimal.Decimal
	Gamma  decimal.Decimal
	Theta  decimal.Decimal
	Vega   decimal.Decimal
}

// ComputeLadder prices the template contract at every strike and returns
// one row per strike, in input order. Rows are priced concurrently on a
// worker pool; the first pricing error aborts the ladder.
func ComputeLadder(template *models.Option, strikes []decimal.Decimal, workers int) ([]LadderRow, error) {
	rows := make([]LadderRow, len(strikes))
	errs := make([]error, len(strikes))

	pool := performance.NewWorkerPool(workers)
	pool.Start()
	defer pool.Stop()

	var wg sync.WaitGroup
	for i, strike := range strikes {
		wg.Add(1)
		idx, k := i, strike
		task := func() {
			defer wg.Done()
			o := *template
			o.Strike = k
			rows[idx], errs[idx] = ladderRow(&o)
		}
		if !pool.Submit(task) {
			// queue full, price on the caller
			task()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func ladderRow(o *models.Option) (LadderRow, error) {
	row := LadderRow{Strike: o.Strike}

	var err error
	if row.Delta, err = Delta(o); err != nil {
		return LadderRow{}, err
	}
	if row.Gamma, err = Gamma(o); err != nil {
		return LadderRow{}, err
	}
	if row.Theta, err = Theta(o); err != nil {
		return LadderRow{}, err
	}
	if row.Vega, err = Vega(o); err != nil {
		return LadderRow{}, err
	}
	return row, nil
}
