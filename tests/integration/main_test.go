// Package integration exercises the HTTP API end to end against in-memory stores
package integration

import (
	"net/http"

	"github.com/stretchr/testify/suite"

	"github.com/Hiro-mackay/tripshare/tests/testutil"
)

// apiSuite holds the server shared by the HTTP suites
type apiSuite struct {
	suite.Suite
	server *testutil.TestServer
}

// SetupTest gives each test a fresh server so stores never leak between tests
func (s *apiSuite) SetupTest() {
	s.server = testutil.NewTestServer(s.T())
}

func (s *apiSuite) token(userID string) string {
	return s.server.Token(s.T(), userID, "User "+userID)
}

func (s *apiSuite) do(req testutil.HTTPRequest) *testutil.HTTPResponse {
	return testutil.DoRequest(s.T(), s.server.Echo, req)
}

// createGroup creates a group as userID and returns its id and join code
func (s *apiSuite) createGroup(userID string, body map[string]interface{}) (string, string) {
	resp := s.do(testutil.HTTPRequest{
		Method:      http.MethodPost,
		Path:        "/api/v1/groups",
		Body:        body,
		AccessToken: s.token(userID),
	}).AssertStatus(http.StatusCreated)

	data := resp.GetJSONData()
	s.Require().NotNil(data)
	return data["id"].(string), data["code"].(string)
}

// joinByCode joins a public group as userID
func (s *apiSuite) joinByCode(userID, code string) {
	s.do(testutil.HTTPRequest{
		Method:      http.MethodPost,
		Path:        "/api/v1/groups/join",
		Body:        map[string]string{"code": code},
		AccessToken: s.token(userID),
	}).AssertStatus(http.StatusOK).AssertJSONPath("data.joined", true)
}
