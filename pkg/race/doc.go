// Package race provides a coordination primitive for racing a set of
// asynchronous tasks against a shared deadline and ranking the results.
//
// Callers register named units of work on a RaceTrack, run the race, and
// retrieve the final standings: finishers ordered by completion time,
// followed by every racer that did not settle before the deadline, marked
// disqualified.
//
//	track := race.DisqualifyAfter[int](300 * time.Millisecond)
//
//	track.AddRacer("Racer #1", func(ctx context.Context) (int, error) {
//	    time.Sleep(100 * time.Millisecond)
//	    return 1, nil
//	})
//	track.AddRacer("Racer #2", func(ctx context.Context) (int, error) {
//	    select {
//	    case <-time.After(200 * time.Second):
//	        return 2, nil
//	    case <-ctx.Done():
//	        return 0, ctx.Err()
//	    }
//	})
//
//	track.Run(context.Background())
//	rankings, _ := track.Rankings()
//	// rankings[0]: Racer #1, finished, order 0
//	// rankings[1]: Racer #2, disqualified
//
// A racer's work is opaque to the engine: it either returns a value or an
// error, and may suspend internally however it likes. A failing racer is
// ranked as a finisher that failed; it never aborts the race or affects
// other racers. At the deadline, still-running racers are cancelled
// best-effort through the context passed to their work and classified
// disqualified without waiting for them to unwind.
package race
