package platform_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	httpapi "github.com/studyhall/studyhall/internal/platform/http"
	"github.com/studyhall/studyhall/internal/platform/service"
	"github.com/studyhall/studyhall/internal/platform/store/drivers/sqlite"
	"github.com/studyhall/studyhall/pkg/jwtx"
	"github.com/studyhall/studyhall/pkg/slogx"
	"github.com/studyhall/studyhall/pkg/studysdk"
)

/*
 * End-to-end tests for the platform: a real router over an in-memory
 * database, driven exclusively through the SDK the way a frontend
 * would be.
 */

const (
	testIssuer   = "studyhall-test"
	testPassword = "correct-horse-battery"
)

// newTestServer stands up the full HTTP stack on an in-memory database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA("e2e-key",
		pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	require.NoError(t, keys.AddSigner(signer))

	logger := slogx.New(slogx.Config{
		Service: "studyhall",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	router := httpapi.NewRouter(
		jwtx.NewCommonEdDSA(keys, testIssuer),
		"test",
		false,
		st,
		logger,
	)
	router.AuthService = &service.AuthService{
		Store:      st,
		Signer:     signer,
		Issuer:     testIssuer,
		AccessTTL:  time.Minute,
		RefreshTTL: time.Hour,
	}
	router.UserService = &service.UserService{Store: st}
	router.CourseService = &service.CourseService{Store: st}
	router.QuizService = &service.QuizService{Store: st}
	router.AttemptService = &service.AttemptService{Store: st}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

// signUp registers a fresh account through the API and returns a
// signed-in SDK client for it.
func signUp(t *testing.T, srv *httptest.Server, email, role string) *studysdk.Client {
	t.Helper()

	c := studysdk.New(srv.URL)
	user, err := c.Register(context.Background(), studysdk.RegisterRequest{
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Password:  testPassword,
		Role:      role,
	})
	require.NoError(t, err)
	require.Equal(t, role, user.Role)
	return c
}

// buildQuiz creates a course with one chapter, a question bank, and a
// published quiz. It returns the instructor's client, the course join
// code, the quiz ID, and the answer key by question ID.
func buildQuiz(
	t *testing.T,
	srv *httptest.Server,
	questionCount int,
	bank []studysdk.QuestionRequest,
) (instructor *studysdk.Client, joinCode, quizID string, answers map[string]int) {
	t.Helper()
	ctx := context.Background()

	instructor = signUp(t, srv, "instructor@studyhall.test", "INSTRUCTOR")

	course, err := instructor.CreateCourse(ctx, "Programming 101", "Intro course")
	require.NoError(t, err)
	require.NotEmpty(t, course.JoinCode)

	require.NoError(t, instructor.SetCourseStatus(ctx, course.ID, "ACTIVE"))

	chapter, err := instructor.CreateChapter(ctx, course.ID, "Basics", 1)
	require.NoError(t, err)

	answers = make(map[string]int, len(bank))
	for _, q := range bank {
		created, err := instructor.CreateQuestion(ctx, chapter.ID, q)
		require.NoError(t, err)
		answers[created.ID] = q.CorrectIndex
	}

	published := true
	quiz, err := instructor.CreateQuiz(ctx, chapter.ID, studysdk.QuizRequest{
		Title:         "Basics Check",
		QuestionCount: questionCount,
		Published:     &published,
	})
	require.NoError(t, err)

	return instructor, course.JoinCode, quiz.ID, answers
}

// questionBank builds a small bank with every difficulty represented.
// All questions share the same shape: four choices, answer at index 1.
func questionBank(perDifficulty int) []studysdk.QuestionRequest {
	var bank []studysdk.QuestionRequest
	for _, diff := range []string{"EASY", "MEDIUM", "HARD"} {
		for i := 0; i < perDifficulty; i++ {
			bank = append(bank, studysdk.QuestionRequest{
				Prompt:       diff + " question",
				Choices:      []string{"wrong", "right", "wrong", "wrong"},
				CorrectIndex: 1,
				Difficulty:   diff,
			})
		}
	}
	return bank
}

func requireAPIError(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *studysdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
}
