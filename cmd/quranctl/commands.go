package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taiwoajasa245/quran-api/internal/auth"
	"github.com/taiwoajasa245/quran-api/internal/ayah"
	"github.com/taiwoajasa245/quran-api/internal/ingest"
	"github.com/taiwoajasa245/quran-api/internal/kitab"
	"github.com/taiwoajasa245/quran-api/internal/para"
	"github.com/taiwoajasa245/quran-api/internal/quranapi"
	"github.com/taiwoajasa245/quran-api/internal/surah"
	"github.com/taiwoajasa245/quran-api/internal/validation"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newSeedCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the Quran kitab, its surahs and ayahs from a JSON dump",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return err
			}
			defer f.Close()

			data, err := ingest.ReadSeedFile(f)
			if err != nil {
				return err
			}

			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			seeder := ingest.NewSeeder(kitab.NewKitabRepo(db), surah.NewSurahRepo(db), ayah.NewAyahRepo(db), a.log)
			report, err := seeder.Seed(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "quran-data.json", "Path to the quran-data.json dump")
	return cmd
}

func newSeedParasCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-paras",
		Short: "Upsert the 30 paras and assign every ayah to its para",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			svc, err := para.NewParaService(para.NewRepository(db), a.log)
			if err != nil {
				return err
			}
			report, err := svc.SeedAndAssign(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func newImportTranslationsCmd(a *app) *cobra.Command {
	req := ingest.TranslationImport{}
	cmd := &cobra.Command{
		Use:   "import-translations",
		Short: "Fetch a translation resource from api.quran.com for all 114 surahs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			client := quranapi.NewClient(a.cfg.QuranAPIURL, a.cfg.QuranAPIRPS, a.log)
			report, err := ingest.NewTranslationImporter(client, ayah.NewAyahRepo(db), a.log).Import(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().IntVar(&req.ResourceID, "translation-id", 225, "api.quran.com translation resource id")
	cmd.Flags().StringVar(&req.Language, "language", "gu", "Language code stored with each translation")
	cmd.Flags().StringVar(&req.Translator, "translator", "Rabila Al-Umry", "Translator name stored with each translation")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		out     string
		tajweed bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every kitab with its surahs and ayahs as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			var source ingest.TajweedSource
			if tajweed {
				source = quranapi.NewClient(a.cfg.QuranAPIURL, a.cfg.QuranAPIRPS, a.log)
			}
			exporter := ingest.NewExporter(kitab.NewKitabRepo(db), surah.NewSurahRepo(db), ayah.NewAyahRepo(db), source, a.log)

			w := cmd.OutOrStdout()
			if out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := exporter.Export(cmd.Context(), w); err != nil {
				return err
			}
			if out != "-" {
				a.log.Info("export written", "path", out)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "quran_data.json", "Output file, or - for stdout")
	cmd.Flags().BoolVar(&tajweed, "tajweed", false, "Merge uthmani tajweed text from api.quran.com")
	return cmd
}

func newFixRelationsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fix-relations",
		Short: "Link ayahs without a surah_id to the surah with their surah_number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := ayah.NewAyahRepo(db).FixSurahRelations(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d ayahs\n", n)
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print the ayah count and the first ayah",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			repo := ayah.NewAyahRepo(db)
			count, err := repo.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total Ayahs: %d\n", count)
			if count == 0 {
				return nil
			}

			first, err := repo.First(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "First Ayah:")
			return printJSON(cmd.OutOrStdout(), first)
		},
	}
}

// newCreateAdminCmd provisions an admin account. Public registration only
// ever creates plain users, so this is how the first admin gets in.
func newCreateAdminCmd(a *app) *cobra.Command {
	var req auth.CreateUserRequest
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user with the admin role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = auth.RoleAdmin
			if err := validation.New().Validate(req); err != nil {
				return err
			}

			db, err := a.openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			authService := auth.NewAuthService(auth.NewRepository(db), nil, a.log)
			user, err := authService.CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created admin %s (id %d)\n", user.Email, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "Admin", "Display name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password, at least 8 characters")
	return cmd
}
