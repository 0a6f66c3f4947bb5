package server

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ingramleedy/AustroView/internal/decode"
	"github.com/ingramleedy/AustroView/internal/export"
	"github.com/ingramleedy/AustroView/internal/manifest"
	"github.com/ingramleedy/AustroView/internal/signal"
)

// Server coordinates HTTP handlers and manages temporary artifacts produced
// by conversion requests.
type Server struct {
	artifacts  *ArtifactStore
	workDir    string
	uploadsDir string
}

// Artifact represents a file generated or stored by the daemon.
type Artifact struct {
	ID          string
	Path        string
	Name        string
	ContentType string
	Size        int64
	Kind        string
}

// ArtifactRef is the public representation returned in API responses.
type ArtifactRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContentType string `json:"contentType,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Kind        string `json:"kind,omitempty"`
}

// ArtifactStore keeps track of generated artifacts for later download.
type ArtifactStore struct {
	mu      sync.RWMutex
	entries map[string]Artifact
}

// NewServer constructs a Server rooted at a temporary workspace directory.
func NewServer(opts Options) (*Server, error) {
	storageDir := opts.StorageDir
	if storageDir == "" {
		storageDir = os.TempDir()
	}
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, err
	}
	workDir, err := os.MkdirTemp(storageDir, "austrod-")
	if err != nil {
		return nil, err
	}
	uploadsDir := filepath.Join(workDir, "uploads")
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		os.RemoveAll(workDir)
		return nil, err
	}
	s := &Server{
		artifacts:  &ArtifactStore{entries: make(map[string]Artifact)},
		workDir:    workDir,
		uploadsDir: uploadsDir,
	}
	return s, nil
}

// Close removes any temporary state associated with the server.
func (s *Server) Close() error {
	if s == nil || s.workDir == "" {
		return nil
	}
	return os.RemoveAll(s.workDir)
}

func (s *Server) addArtifact(path, displayName, contentType, kind string) (Artifact, error) {
	if path == "" {
		return Artifact{}, errors.New("empty path")
	}
	info, err := os.Stat(path)
	if err != nil {
		return Artifact{}, err
	}
	id := randomID()
	art := Artifact{
		ID:          id,
		Path:        path,
		Name:        displayName,
		ContentType: contentType,
		Size:        info.Size(),
		Kind:        kind,
	}
	if art.Name == "" {
		art.Name = filepath.Base(path)
	}
	if art.ContentType == "" {
		art.ContentType = guessContentType(art.Name)
	}
	s.artifacts.mu.Lock()
	s.artifacts.entries[id] = art
	s.artifacts.mu.Unlock()
	return art, nil
}

func (s *Server) getArtifact(id string) (Artifact, bool) {
	s.artifacts.mu.RLock()
	art, ok := s.artifacts.entries[id]
	s.artifacts.mu.RUnlock()
	return art, ok
}

func (s *Server) listArtifacts() []ArtifactRef {
	s.artifacts.mu.RLock()
	refs := make([]ArtifactRef, 0, len(s.artifacts.entries))
	for _, art := range s.artifacts.entries {
		refs = append(refs, toRef(art))
	}
	s.artifacts.mu.RUnlock()
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs
}

func (s *Server) resolvePath(token string) (string, error) {
	if token == "" {
		return "", errors.New("empty input path")
	}
	if art, ok := s.getArtifact(token); ok {
		return art.Path, nil
	}
	abs := token
	if !filepath.IsAbs(token) {
		abs = filepath.Clean(token)
	}
	if _, err := os.Stat(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// sessionView is the JSON digest of one decoded session.
type sessionView struct {
	Start          string  `json:"start,omitempty"`
	End            string  `json:"end,omitempty"`
	Duration       string  `json:"duration"`
	Records        int     `json:"records"`
	MaxPropSpeed   float64 `json:"maxPropSpeed"`
	MaxCoolantTemp float64 `json:"maxCoolantTemp,omitempty"`
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Input       string `json:"input"`
		SummaryOnly bool   `json:"summaryOnly"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if req.Input == "" {
		http.Error(w, "input required", http.StatusBadRequest)
		return
	}
	inputPath, err := s.resolvePath(req.Input)
	if err != nil {
		http.Error(w, fmt.Sprintf("input resolve: %v", err), http.StatusBadRequest)
		return
	}
	displayName := req.Input
	if art, ok := s.getArtifact(req.Input); ok {
		displayName = art.Name
	}

	res, err := decode.File(inputPath, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("decode: %v", err), http.StatusUnprocessableEntity)
		return
	}

	views := make([]sessionView, 0, len(res.Sessions))
	for _, session := range res.Sessions {
		st := export.Stats(session)
		view := sessionView{
			Duration:     export.FormatDuration(st.Duration),
			Records:      st.Records,
			MaxPropSpeed: st.MaxProp,
		}
		if !st.Start.IsZero() {
			view.Start = st.Start.UTC().Format(time.RFC3339)
		}
		if !st.End.IsZero() {
			view.End = st.End.UTC().Format(time.RFC3339)
		}
		if st.HasCoolant {
			view.MaxCoolantTemp = st.MaxCoolant
		}
		views = append(views, view)
	}

	var refs []ArtifactRef
	if !req.SummaryOnly {
		refs, err = s.registerOutputs(displayName, res)
		if err != nil {
			http.Error(w, fmt.Sprintf("write outputs: %v", err), http.StatusInternalServerError)
			return
		}
	}

	resp := struct {
		File      string        `json:"file"`
		Sha256    string        `json:"sha256"`
		Sectors   int           `json:"sectors"`
		Sessions  []sessionView `json:"sessions"`
		Summary   string        `json:"summary"`
		Artifacts []ArtifactRef `json:"artifacts,omitempty"`
	}{
		File:      displayName,
		Sha256:    res.SHA256,
		Sectors:   res.Sectors,
		Sessions:  views,
		Summary:   export.Summary(displayName, res.Sessions),
		Artifacts: refs,
	}
	writeJSON(w, http.StatusOK, resp)
}

// registerOutputs writes CSVs, the PDF report and a manifest for a decoded
// file into the workspace and registers each as a downloadable artifact.
func (s *Server) registerOutputs(displayName string, res decode.Result) ([]ArtifactRef, error) {
	stem := strings.TrimSuffix(filepath.Base(displayName), filepath.Ext(displayName))
	outDir, err := os.MkdirTemp(s.workDir, "convert-")
	if err != nil {
		return nil, err
	}
	csvPaths, err := export.WriteSessionCSVs(stem, res.Sessions, outDir)
	if err != nil {
		return nil, err
	}
	var refs []ArtifactRef
	for _, p := range csvPaths {
		art, err := s.addArtifact(p, filepath.Base(p), "text/csv", "csv")
		if err != nil {
			return nil, err
		}
		refs = append(refs, toRef(art))
	}

	pdfPath := filepath.Join(outDir, stem+"_report.pdf")
	err = export.SaveReportPDF(export.ReportInput{
		Filename: filepath.Base(displayName),
		SHA256:   res.SHA256,
		Sessions: res.Sessions,
	}, pdfPath)
	if err != nil {
		return nil, err
	}
	pdfArt, err := s.addArtifact(pdfPath, stem+"_report.pdf", "application/pdf", "report")
	if err != nil {
		return nil, err
	}
	refs = append(refs, toRef(pdfArt))

	m, err := manifest.Build(append(append([]string{res.Path}, csvPaths...), pdfPath))
	if err != nil {
		return nil, err
	}
	manifestPath := filepath.Join(outDir, stem+"_manifest.json")
	if err := manifest.Save(m, manifestPath); err != nil {
		return nil, err
	}
	manArt, err := s.addArtifact(manifestPath, stem+"_manifest.json", "application/json", "manifest")
	if err != nil {
		return nil, err
	}
	refs = append(refs, toRef(manArt))
	return refs, nil
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Inputs []string `json:"inputs"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid json: %v", err), http.StatusBadRequest)
		return
	}
	if len(req.Inputs) == 0 {
		http.Error(w, "inputs required", http.StatusBadRequest)
		return
	}
	var paths []string
	for _, in := range req.Inputs {
		resolved, err := s.resolvePath(in)
		if err != nil {
			http.Error(w, fmt.Sprintf("resolve %s: %v", in, err), http.StatusBadRequest)
			return
		}
		paths = append(paths, resolved)
	}
	m, err := manifest.Build(paths)
	if err != nil {
		http.Error(w, fmt.Sprintf("build manifest: %v", err), http.StatusInternalServerError)
		return
	}
	outPath := filepath.Join(s.workDir, fmt.Sprintf("manifest-%s.json", randomID()))
	if err := manifest.Save(m, outPath); err != nil {
		http.Error(w, fmt.Sprintf("write manifest: %v", err), http.StatusInternalServerError)
		return
	}
	art, err := s.addArtifact(outPath, "manifest.json", "application/json", "manifest")
	if err != nil {
		http.Error(w, fmt.Sprintf("register manifest: %v", err), http.StatusInternalServerError)
		return
	}
	resp := struct {
		Manifest manifest.Manifest `json:"manifest"`
		Artifact ArtifactRef       `json:"artifact"`
	}{
		Manifest: m,
		Artifact: toRef(art),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	type channelView struct {
		Code int    `json:"code"`
		Name string `json:"name"`
		Unit string `json:"unit"`
	}
	var out []channelView
	for _, code := range signal.Codes() {
		spec, _ := signal.LookupChannel(code)
		cls, _ := signal.LookupClass(spec.ClassIndex)
		out = append(out, channelView{Code: code, Name: spec.Name, Unit: cls.Unit})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleArtifacts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.listArtifacts())
}

func (s *Server) handleArtifactDownload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/artifacts/")
	if id == "" {
		s.handleArtifacts(w, r)
		return
	}
	art, ok := s.getArtifact(id)
	if !ok {
		http.NotFound(w, r)
		return
	}
	f, err := os.Open(art.Path)
	if err != nil {
		http.Error(w, fmt.Sprintf("open artifact: %v", err), http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, fmt.Sprintf("stat artifact: %v", err), http.StatusInternalServerError)
		return
	}
	if art.ContentType != "" {
		w.Header().Set("Content-Type", art.ContentType)
	}
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	disposition := fmt.Sprintf("attachment; filename=\"%s\"", art.Name)
	w.Header().Set("Content-Disposition", disposition)
	io.Copy(w, f)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toRef(art Artifact) ArtifactRef {
	return ArtifactRef{
		ID:          art.ID,
		Name:        art.Name,
		ContentType: art.ContentType,
		Size:        art.Size,
		Kind:        art.Kind,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func guessContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	switch ext {
	case ".json":
		return "application/json"
	case ".csv":
		return "text/csv"
	case ".pdf":
		return "application/pdf"
	case ".xml":
		return "application/xml"
	case ".txt":
		return "text/plain"
	case ".ae3":
		return "application/octet-stream"
	default:
		return "application/octet-stream"
	}
}

func randomID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		now := time.Now().UTC()
		return fmt.Sprintf("%d%06d", now.UnixNano(), os.Getpid())
	}
	return hex.EncodeToString(b[:])
}
