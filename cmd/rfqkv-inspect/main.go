// rfqkv-inspect prints the content of an rfqkv snapshot directory.
//
//	rfqkv-inspect -config rfqkv.yaml
//	rfqkv-inspect -dir ./snapshot -records
//	rfqkv-inspect -dir ./snapshot -requester 9
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/cqkv/rfqkv/config"
	"github.com/cqkv/rfqkv/engine"
	"github.com/cqkv/rfqkv/rfq"
	"github.com/cqkv/rfqkv/snapshot"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "rfqkv-inspect:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("rfqkv-inspect", flag.ContinueOnError)
	var (
		configFile = fs.String("config", "", "YAML configuration file")
		dir        = fs.String("dir", "", "snapshot directory, overrides snapshot_dir")
		records    = fs.Bool("records", false, "print every RFQ")
		requester  = fs.Int("requester", 0, "print the RFQs of this requester")
		clOrdID    = fs.String("clordid", "", "print the RFQs with this requester order id")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return err
		}
	}
	if *dir != "" {
		cfg.SnapshotDir = *dir
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, meta, err := snapshot.Load(cfg.SnapshotDir, cfg.StoreOptions(logger)...)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.SnapshotDir, err)
	}
	logger.Debug("snapshot loaded", zap.String("dir", cfg.SnapshotDir), zap.Stringer("id", meta.ID))

	fmt.Fprintf(out, "snapshot  %s\n", meta.ID)
	fmt.Fprintf(out, "schema    %d\n", meta.Schema)
	fmt.Fprintf(out, "records   %d/%d\n", meta.Count, meta.Capacity)
	fmt.Fprintf(out, "checksum  %08x\n", store.Checksum())

	e := engine.New(store, engine.WithLogger(logger), engine.WithNamespace(cfg.MetricsNamespace))
	var rfqs []*rfq.Rfq
	switch {
	case *requester != 0:
		rfqs = e.ByRequester(int32(*requester))
	case *clOrdID != "":
		rfqs = e.ByClOrdID(*clOrdID)
	case *records:
		for h := range store.All() {
			if q, err := e.Get(h.ID()); err == nil {
				rfqs = append(rfqs, q)
			}
		}
	default:
		return nil
	}
	return printRfqs(out, rfqs)
}

func printRfqs(out io.Writer, rfqs []*rfq.Rfq) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tSTATE\tCLORDID\tSIDE\tQTY\tSECURITY\tREQUESTER\tRESPONDER\tPRICE")
	for _, q := range rfqs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			q.ID, q.State(), q.Correlation, q.Side, q.Quantity, q.SecurityID, q.Requester,
			user(q.Responder()), price(q.Price()))
	}
	return w.Flush()
}

func user(id int32) string {
	if id == rfq.NoUser {
		return "-"
	}
	return fmt.Sprint(id)
}

func price(p int64) string {
	if p == rfq.NoPrice {
		return "-"
	}
	return fmt.Sprint(p)
}
