package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var testNow = time.Date(2026, 10, 18, 15, 30, 0, 0, time.UTC)

func validInput() CreateRequestInput {
	return CreateRequestInput{
		ProblemType: Litter,
		Location:    "  12 Main St  ",
		Severity:    Medium,
		Description: "  Overflowing bins near the bus stop  ",
		ContactInfo: ContactInfo{
			Phone: "+1 (555) 123-4567",
			Email: "Reporter@Example.com",
		},
		Photos: []string{"https://cdn.example.com/a.jpg", " "},
	}
}

func fieldNames(t *testing.T, err error) []string {
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok, "expected validation errors, got %v", err)
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field)
	}
	return names
}

func TestNewCleanupRequestDefaults(t *testing.T) {
	r, err := NewCleanupRequest(validInput(), nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, "Litter & Trash", r.ProblemLabel)
	assert.Equal(t, Pending, r.Status)
	assert.Equal(t, Medium, r.Priority)
	assert.Equal(t, "12 Main St", r.Location)
	assert.Equal(t, "Overflowing bins near the bus stop", r.Description)
	assert.Equal(t, "Anonymous", r.ContactInfo.Name)
	assert.Equal(t, "reporter@example.com", r.ContactInfo.Email)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg"}, r.Photos)
	assert.Nil(t, r.SubmittedBy)
	assert.Nil(t, r.ActualCompletion)
	assert.Equal(t, testNow, r.CreatedAt)
	assert.Equal(t, testNow, r.UpdatedAt)
}

func TestNewCleanupRequestExplicitPriority(t *testing.T) {
	in := validInput()
	high := High
	in.Priority = &high

	r, err := NewCleanupRequest(in, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, Medium, r.Severity)
	assert.Equal(t, High, r.Priority)
}

func TestNewCleanupRequestSubmittedBy(t *testing.T) {
	userID := primitive.NewObjectID()
	r, err := NewCleanupRequest(validInput(), &userID, testNow)
	require.NoError(t, err)
	require.NotNil(t, r.SubmittedBy)
	assert.Equal(t, userID, *r.SubmittedBy)
}

func TestProblemLabelMapping(t *testing.T) {
	cases := map[ProblemType]string{
		Litter:    "Litter & Trash",
		Dumping:   "Illegal Dumping",
		Graffiti:  "Graffiti/Vandalism",
		Overgrown: "Overgrown Areas",
		Spill:     "Spills/Stains",
		OtherType: "Other Service",
	}
	for pt, label := range cases {
		in := validInput()
		in.ProblemType = pt
		r, err := NewCleanupRequest(in, nil, testNow)
		require.NoError(t, err, pt)
		assert.Equal(t, label, r.ProblemLabel, pt)
		assert.Equal(t, r.Severity, r.Priority, pt)
	}
}

func TestOtherProblemTypeUsesCustomLabel(t *testing.T) {
	in := validInput()
	in.ProblemType = OtherType
	in.OtherDetails = &OtherDetails{CustomProblemType: " Dead animal removal "}

	r, err := NewCleanupRequest(in, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Dead animal removal", r.ProblemLabel)

	in.OtherDetails = &OtherDetails{PreferredDate: "2026-10-20"}
	r, err = NewCleanupRequest(in, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Other Service", r.ProblemLabel)
}

func TestOtherDetailsDroppedForRegularTypes(t *testing.T) {
	in := validInput()
	in.OtherDetails = &OtherDetails{CustomProblemType: "ignored"}

	r, err := NewCleanupRequest(in, nil, testNow)
	require.NoError(t, err)
	assert.Nil(t, r.OtherDetails)
	assert.Equal(t, "Litter & Trash", r.ProblemLabel)
}

func TestNewCleanupRequestFieldErrors(t *testing.T) {
	in := CreateRequestInput{
		ProblemType: "flood",
		Location:    "  ab ",
		Severity:    "urgent",
		Description: "too short",
		ContactInfo: ContactInfo{
			Name:  strings.Repeat("n", 101),
			Phone: "555-12",
			Email: "not-an-email",
		},
		Coordinates: &Coordinates{Latitude: 91, Longitude: -181},
	}

	_, err := NewCleanupRequest(in, nil, testNow)
	require.Error(t, err)

	names := fieldNames(t, err)
	for _, want := range []string{
		"problemType", "location", "severity", "description",
		"contactInfo.name", "contactInfo.phone", "contactInfo.email",
		"coordinates.latitude", "coordinates.longitude",
	} {
		assert.Contains(t, names, want)
	}
}

func TestEnumErrorReportsValueAndAcceptedSet(t *testing.T) {
	in := validInput()
	in.ProblemType = "flood"

	_, err := NewCleanupRequest(in, nil, testNow)
	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	require.NotEmpty(t, verrs)

	var msg string
	for _, fe := range verrs {
		if fe.Field == "problemType" {
			msg = fe.Message
		}
	}
	assert.Contains(t, msg, `"flood"`)
	assert.Contains(t, msg, "litter, dumping, graffiti, overgrown, spill, other")
}

func TestLengthIsCheckedAfterTrimming(t *testing.T) {
	in := validInput()
	in.Location = "   a    "

	_, err := NewCleanupRequest(in, nil, testNow)
	assert.Contains(t, fieldNames(t, err), "location")

	in = validInput()
	in.Description = strings.Repeat(" ", 20) + "short" + strings.Repeat(" ", 20)
	_, err = NewCleanupRequest(in, nil, testNow)
	assert.Contains(t, fieldNames(t, err), "description")
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("5551234567"))
	assert.True(t, IsValidPhone("+44 (20) 7946-0958"))
	assert.False(t, IsValidPhone("555-1234"))
	assert.False(t, IsValidPhone("555.123.4567"))
	assert.False(t, IsValidPhone("call 5551234567"))
}

func TestOptionalEmailMayBeEmpty(t *testing.T) {
	in := validInput()
	in.ContactInfo.Email = "   "

	r, err := NewCleanupRequest(in, nil, testNow)
	require.NoError(t, err)
	assert.Empty(t, r.ContactInfo.Email)
}
