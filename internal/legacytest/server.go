// Package legacytest hosts an in-process imitation of the legacy PHP
// controllers, just enough surface for the client packages to test against:
// multipart form dispatch on base and param, the code/response envelope,
// the [false] empty idiom and PHPSESSID session handling.
package legacytest

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

// Controller paths relative to the server root, mirroring the production
// URL layout.
const (
	MainPath           = "/controller/cont.php"
	WorkClassPath      = "/Work_classV1/controller/cont.php"
	NoticesPath        = "/Notices/controller/cont.php"
	NursingPath        = "/enfermeriaNewStudentV2/controller/cont.php"
	CommunicationsPath = "/Comunicaciones/controller/cont.php"
)

const sessionCookie = "PHPSESSID"

// EmptyResponse is the controllers' "no data" idiom.
var EmptyResponse = []interface{}{false}

// Fixtures maps "base/param" keys to the response value each operation
// answers with. Operations without a fixture answer the empty idiom.
type Fixtures map[string]interface{}

// Server is the fake backend. Every controller endpoint shares one handler
// because the real ones only differ by URL.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	fixtures  Fixtures
	sessionID string
	loggedIn  bool

	// Requests records every form received, for asserting on wire shape.
	Requests []Request
}

// Request is one captured form submission.
type Request struct {
	Path   string
	Form   map[string]string
	Cookie string
}

// NewServer starts the fake backend with the given fixtures.
func NewServer(fixtures Fixtures) *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{fixtures: fixtures, sessionID: "test-session-1"}

	router := gin.New()
	for _, path := range []string{MainPath, WorkClassPath, NoticesPath, NursingPath, CommunicationsPath} {
		router.POST(path, s.handle)
	}
	s.Server = httptest.NewServer(router)
	return s
}

// URL returns the absolute URL of one controller path.
func (s *Server) URL(path string) string {
	return s.Server.URL + path
}

// SetFixture installs or replaces the response for one base/param pair.
func (s *Server) SetFixture(base, param string, response interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fixtures == nil {
		s.fixtures = Fixtures{}
	}
	s.fixtures[base+"/"+param] = response
}

// LoggedIn reports whether a login form was accepted.
func (s *Server) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *Server) handle(c *gin.Context) {
	base := c.PostForm("base")
	param := c.PostForm("param")

	s.mu.Lock()
	form := map[string]string{}
	if c.Request.MultipartForm != nil {
		for key, values := range c.Request.MultipartForm.Value {
			if len(values) > 0 {
				form[key] = values[0]
			}
		}
	}
	cookie, _ := c.Cookie(sessionCookie)
	s.Requests = append(s.Requests, Request{Path: c.Request.URL.Path, Form: form, Cookie: cookie})
	s.mu.Unlock()

	if base == "comunidad" && param == "login" {
		s.handleLogin(c)
		return
	}

	// Data operations require the session cookie from a prior login.
	if cookie != s.currentSession() {
		c.JSON(http.StatusOK, gin.H{"code": 401, "response": EmptyResponse})
		return
	}

	s.mu.Lock()
	response, ok := s.fixtures[base+"/"+param]
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"code": 200, "response": EmptyResponse})
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "response": response})
}

func (s *Server) currentSession() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// handleLogin accepts any base64 user/pass pair except the literal "false"
// logout triple, which tears the session down. A successful login sets the
// session cookie the way the PHP runtime does.
func (s *Server) handleLogin(c *gin.Context) {
	user, err := base64.StdEncoding.DecodeString(c.PostForm("user"))
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"code": 400, "response": EmptyResponse})
		return
	}

	if string(user) == "false" {
		s.mu.Lock()
		s.loggedIn = false
		s.mu.Unlock()
		c.JSON(http.StatusOK, gin.H{"code": 200, "response": EmptyResponse})
		return
	}

	s.mu.Lock()
	s.loggedIn = true
	sessionID := s.sessionID
	response, ok := s.fixtures["comunidad/login"]
	s.mu.Unlock()

	c.SetCookie(sessionCookie, sessionID, 3600, "/", "", false, true)
	if !ok {
		response = gin.H{"perfil": "ACUDIENTE", "nombre": string(user), "tipo_usuario": "1"}
	}
	c.JSON(http.StatusOK, gin.H{"code": 200, "response": response})
}
