package engine

import "errors"

// Aggregate combines predicted base load and appliance load into the total
// instantaneous draw. There is deliberately no upper clamp: a user may select
// enough appliances to exceed typical household capacity, and the figure is
// informational rather than validated against breaker limits.
func Aggregate(baseWatts, applianceWatts float64) LoadEstimate {
	if baseWatts < 0 {
		baseWatts = 0
	}
	if applianceWatts < 0 {
		applianceWatts = 0
	}
	return LoadEstimate{
		BaseWatts:      baseWatts,
		ApplianceWatts: applianceWatts,
		TotalWatts:     baseWatts + applianceWatts,
	}
}

// Estimate runs the full pipeline for one request: predict base load, sum
// appliance load, aggregate, bill against the tariff schedule, and derive
// efficiency tips. Everything is pure over the inputs, so concurrent calls
// need no synchronization; the model behind base is the only shared resource
// and is read-only.
//
// A missing model artifact does not fail the pipeline: the configured static
// fallback base load is used instead. Any other failure aborts with a typed
// error before partial results are produced.
func Estimate(base BaseLoad, req Request) (*Result, error) {
	baseWatts, err := base.PredictBaseWatts(req.Weather)
	if err != nil {
		if !errors.Is(err, ErrModelUnavailable) {
			return nil, err
		}
		baseWatts = base.FallbackWatts
	}

	applianceWatts, err := ComputeApplianceWatts(req.Appliances)
	if err != nil {
		return nil, err
	}

	load := Aggregate(baseWatts, applianceWatts)

	bill, err := EstimateBill(load.TotalWatts, req.DurationHours, req.Schedule)
	if err != nil {
		return nil, err
	}

	return &Result{
		Load: load,
		Bill: *bill,
		Tips: Suggest(load, req.Appliances, req.Weather),
	}, nil
}
