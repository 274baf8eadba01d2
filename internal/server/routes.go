package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taiwoajasa245/quran-api/internal/auth"
	"github.com/taiwoajasa245/quran-api/internal/ayah"
	"github.com/taiwoajasa245/quran-api/internal/kitab"
	"github.com/taiwoajasa245/quran-api/internal/para"
	"github.com/taiwoajasa245/quran-api/internal/playback"
	"github.com/taiwoajasa245/quran-api/internal/reciter"
	"github.com/taiwoajasa245/quran-api/internal/surah"
	"github.com/taiwoajasa245/quran-api/pkg/response"
)

const apiPrefix = "/quran-api/v1"

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Get home route
	r.Get("/", s.ServerIsWorking)
	r.Get("/health", s.HealthHandler)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/", s.ServerIsWorking)
		s.loadAuthRoutes(r)
		s.loadKitabRoutes(r)
		s.loadSurahRoutes(r)
		s.loadAyahRoutes(r)
		s.loadReciterRoutes(r)
		s.loadParaRoutes(r)
		s.loadPlaybackRoutes(r)
	})

	return r
}

func (s *Server) ServerIsWorking(w http.ResponseWriter, r *http.Request) {
	resp := make(map[string]string)
	resp["message"] = "Welcome to Quran api"
	response.Success(w, resp, "Success")
}

func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	stats := s.db.Health()
	if stats["status"] != "up" {
		response.Error(w, http.StatusServiceUnavailable, "Database unavailable", stats)
		return
	}
	response.Success(w, stats, "Success")
}

// admin groups routes that need a signed-in admin.
func (s *Server) admin(router chi.Router, fn func(r chi.Router)) {
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.tokens))
		r.Use(auth.RequireRole(auth.RoleAdmin))
		fn(r)
	})
}

func (s *Server) loadAuthRoutes(router chi.Router) {
	authRepo := auth.NewRepository(s.db)
	authService := auth.NewAuthService(authRepo, s.tokens, s.log.With("component", "auth"))
	authHandler := auth.NewHandler(authService)

	router.Post("/auth/register", authHandler.RegisterHandler)
	router.Post("/auth/login", authHandler.LoginHandler)

	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(s.tokens))
		r.Get("/auth/me", authHandler.GetUserDetailsHandler)
	})

	s.admin(router, func(r chi.Router) {
		r.Post("/admin/users", authHandler.CreateUserHandler)
	})
}

func (s *Server) loadKitabRoutes(router chi.Router) {
	kitabService := kitab.NewKitabService(kitab.NewKitabRepo(s.db))
	kitabHandler := kitab.NewKitabHandler(kitabService)

	router.Get("/kitabs", kitabHandler.ListKitabsHandler)
	router.Get("/kitabs/{id}", kitabHandler.GetKitabHandler)

	s.admin(router, func(r chi.Router) {
		r.Post("/kitabs", kitabHandler.CreateKitabHandler)
		r.Put("/kitabs/{id}", kitabHandler.UpdateKitabHandler)
		r.Delete("/kitabs/{id}", kitabHandler.DeleteKitabHandler)
	})
}

func (s *Server) loadSurahRoutes(router chi.Router) {
	surahService := surah.NewSurahService(surah.NewSurahRepo(s.db), ayah.NewAyahRepo(s.db))
	surahHandler := surah.NewSurahHandler(surahService)

	router.Get("/surahs", surahHandler.ListSurahsHandler)
	router.Get("/surahs/{id}", surahHandler.GetSurahHandler)

	s.admin(router, func(r chi.Router) {
		r.Post("/surahs", surahHandler.CreateSurahHandler)
		r.Put("/surahs/{id}", surahHandler.UpdateSurahHandler)
		r.Delete("/surahs/{id}", surahHandler.DeleteSurahHandler)
	})
}

func (s *Server) loadAyahRoutes(router chi.Router) {
	ayahService := ayah.NewAyahService(ayah.NewAyahRepo(s.db))
	ayahHandler := ayah.NewAyahHandler(ayahService)

	router.Get("/ayahs", ayahHandler.ListAyahsHandler)
	router.Get("/ayahs/{id}", ayahHandler.GetAyahHandler)

	s.admin(router, func(r chi.Router) {
		r.Post("/ayahs", ayahHandler.CreateAyahHandler)
		r.Put("/ayahs/{id}", ayahHandler.UpdateAyahHandler)
		r.Delete("/ayahs/{id}", ayahHandler.DeleteAyahHandler)

		r.Post("/tafsirs", ayahHandler.CreateTafsirHandler)
		r.Put("/tafsirs/{id}", ayahHandler.UpdateTafsirHandler)
		r.Delete("/tafsirs/{id}", ayahHandler.DeleteTafsirHandler)
	})
}

func (s *Server) loadReciterRoutes(router chi.Router) {
	reciterHandler := reciter.NewReciterHandler(reciter.NewReciterService(reciter.NewReciterRepo(s.db)))

	router.Get("/reciters", reciterHandler.ListRecitersHandler)
	router.Get("/reciters/{id}", reciterHandler.GetReciterHandler)

	s.admin(router, func(r chi.Router) {
		r.Post("/reciters", reciterHandler.CreateReciterHandler)
		r.Put("/reciters/{id}", reciterHandler.UpdateReciterHandler)
		r.Delete("/reciters/{id}", reciterHandler.DeleteReciterHandler)
	})
}

func (s *Server) loadParaRoutes(router chi.Router) {
	paraHandler := para.NewParaHandler(s.paras)

	router.Get("/paras", paraHandler.ListParasHandler)
	router.Get("/paras/{number}", paraHandler.GetParaHandler)
	router.Get("/paras/{number}/ayahs", paraHandler.ListParaAyahsHandler)

	s.admin(router, func(r chi.Router) {
		r.Post("/admin/paras/assign", paraHandler.AssignParasHandler)
	})
}

func (s *Server) loadPlaybackRoutes(router chi.Router) {
	h := playback.NewPlaybackHandler(s.playback)

	router.Route("/playback/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSessionHandler)
		r.Get("/{id}", h.GetSessionHandler)
		r.Delete("/{id}", h.DeleteSessionHandler)

		r.Post("/{id}/finished", h.FinishedHandler)
		r.Post("/{id}/position", h.PositionHandler)
		r.Post("/{id}/load-failed", h.LoadFailedHandler)
		r.Post("/{id}/next", h.NextHandler)
		r.Post("/{id}/previous", h.PreviousHandler)
		r.Post("/{id}/pause", h.PauseHandler)
		r.Post("/{id}/resume", h.ResumeHandler)
		r.Post("/{id}/stop", h.StopHandler)
		r.Post("/{id}/seek", h.SeekHandler)
		r.Post("/{id}/select", h.SelectHandler)
		r.Post("/{id}/next-chapter", h.NextChapterHandler)
		r.Post("/{id}/previous-chapter", h.PreviousChapterHandler)
	})

	s.admin(router, func(r chi.Router) {
		r.Post("/admin/playback/reload", h.ReloadCatalogHandler)
	})
}
