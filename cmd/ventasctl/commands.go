package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ventas-analytics/internal/application/analytics"
	"github.com/jhoicas/ventas-analytics/internal/application/auth"
	"github.com/jhoicas/ventas-analytics/internal/application/dto"
	"github.com/jhoicas/ventas-analytics/internal/application/ingest"
	"github.com/jhoicas/ventas-analytics/internal/application/usecase"
	"github.com/jhoicas/ventas-analytics/internal/domain/repository"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/csvsource"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/export"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/ventas-analytics/internal/infrastructure/storage"
	"github.com/jhoicas/ventas-analytics/pkg/config"
	"github.com/jhoicas/ventas-analytics/pkg/jwt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type cli struct {
	cfg    *config.Config
	log    zerolog.Logger
	stdout io.Writer
}

// ingest carga cada archivo en su propio lote y escribe el resumen en JSON.
func (c *cli) ingest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("ingest", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("ingest: indique al menos un archivo CSV")
	}

	store, err := storage.Open(ctx, c.cfg.DB, c.log)
	if err != nil {
		return err
	}
	defer store.Close()

	pipeline := ingest.NewPipeline(csvsource.NewReader(), store.TxRunner, nil, c.log)
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	for _, path := range fs.Args() {
		res, err := pipeline.IngestFile(ctx, path)
		if err != nil {
			return err
		}
		if err := enc.Encode(res.DTO()); err != nil {
			return err
		}
	}
	return nil
}

// sourceFlags opciones comunes de report y dashboard.
type sourceFlags struct {
	source string
	csv    string
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.source, "source", "db", "origen de los datos: db | csv")
	fs.StringVar(&s.csv, "csv", "", "archivo CSV (con -source csv)")
}

// aggregator resuelve el origen: el almacén configurado o un CSV en memoria.
func (c *cli) aggregator(ctx context.Context, s sourceFlags) (repository.Aggregator, func(), error) {
	switch s.source {
	case "db":
		store, err := storage.Open(ctx, c.cfg.DB, c.log)
		if err != nil {
			return nil, nil, err
		}
		return store.Aggregator, store.Close, nil
	case "csv":
		if s.csv == "" {
			return nil, nil, fmt.Errorf("-source csv requiere -csv <archivo>")
		}
		agg, err := analytics.LoadCSV(s.csv, csvsource.NewReader(), nil, c.log)
		if err != nil {
			return nil, nil, err
		}
		return agg, func() {}, nil
	}
	return nil, nil, fmt.Errorf("origen desconocido %q (db | csv)", s.source)
}

func (c *cli) report(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	var src sourceFlags
	src.register(fs)
	format := fs.String("format", "json", "formato: json | csv | pdf")
	out := fs.String("out", c.cfg.Report.Dir, "directorio de salida")
	var req dto.ReportRequest
	fs.StringVar(&req.StartDate, "start", "", "fecha inicial YYYY-MM-DD")
	fs.StringVar(&req.EndDate, "end", "", "fecha final YYYY-MM-DD")
	fs.StringVar(&req.Store, "store", "", "tiendas separadas por comas")
	fs.StringVar(&req.Product, "product", "", "productos separados por comas")
	if err := fs.Parse(args); err != nil {
		return err
	}
	switch *format {
	case "json", "csv", "pdf":
	default:
		return fmt.Errorf("formato desconocido %q (json | csv | pdf)", *format)
	}

	filter, err := usecase.ParseFilter(req)
	if err != nil {
		return err
	}
	agg, closeFn, err := c.aggregator(ctx, src)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := analytics.NewReportAssembler(agg, analytics.WithTopN(c.cfg.Report.TopProductsLimit)).Build(ctx, filter)
	if err != nil {
		return err
	}

	w := export.NewWriter()
	var written []string
	switch *format {
	case "json":
		path := filepath.Join(*out, export.ReportJSONName)
		if err := w.WriteReportJSON(path, dto.FromReport(report)); err != nil {
			return err
		}
		written = []string{path}
	case "csv":
		written, err = w.WriteReportCSV(*out, dto.FromReport(report))
		if err != nil {
			return err
		}
	case "pdf":
		doc, err := pdf.NewReportGenerator(c.cfg.App.Name).GenerateReportPDF(ctx, report)
		if err != nil {
			return err
		}
		path := filepath.Join(*out, "rapport_ventes.pdf")
		if err := w.WritePDF(path, doc); err != nil {
			return err
		}
		written = []string{path}
	}

	c.log.Info().Str("format", *format).Strs("files", written).Msg("reporte generado")
	for _, p := range written {
		fmt.Fprintln(c.stdout, p)
	}
	return nil
}

func (c *cli) dashboard(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("dashboard", flag.ContinueOnError)
	var src sourceFlags
	src.register(fs)
	out := fs.String("out", c.cfg.Report.DashboardJSPath, "archivo de salida")
	if err := fs.Parse(args); err != nil {
		return err
	}

	agg, closeFn, err := c.aggregator(ctx, src)
	if err != nil {
		return err
	}
	defer closeFn()

	assembler := analytics.NewReportAssembler(agg, analytics.WithTopN(c.cfg.Report.TopProductsLimit))
	uc := analytics.NewDashboardUseCase(assembler, export.NewWriter(), c.log)
	if err := uc.Publish(ctx, *out); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, *out)
	return nil
}

func (c *cli) schema(ctx context.Context) error {
	store, err := storage.Open(ctx, c.cfg.DB, c.log)
	if err != nil {
		return err
	}
	store.Close()
	fmt.Fprintf(c.stdout, "esquema listo (%s)\n", store.Driver)
	return nil
}

// token emite un JWT firmado con JWT_SECRET para llamar a las rutas protegidas.
func (c *cli) token(args []string) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	var req dto.TokenRequest
	fs.StringVar(&req.UserID, "user", "", "identificador del operador")
	fs.StringVar(&req.Role, "role", jwt.RoleViewer, "rol: admin | viewer")
	fs.IntVar(&req.ExpMinutes, "exp", 0, "minutos de validez (0 = JWT_EXPIRATION_MINUTES)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	uc := auth.NewAuthUseCase(auth.JWTConfig{
		Secret:     c.cfg.JWT.Secret,
		ExpMinutes: c.cfg.JWT.Expiration,
		Issuer:     c.cfg.JWT.Issuer,
	})
	out, err := uc.IssueToken(req)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
