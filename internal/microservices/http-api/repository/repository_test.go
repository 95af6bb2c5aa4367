package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"cocktailhub/internal/microservices/http-api/models"
	"cocktailhub/internal/microservices/http-api/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"
)

type RepositorySuite struct {
	suite.Suite
	DB           *gorm.DB
	mock         sqlmock.Sqlmock
	observedLogs *observer.ObservedLogs

	users       repository.UserRepository
	cocktails   repository.CocktailRepository
	ingredients *repository.IngredientRepo
	reviews     repository.ReviewRepository
}

func (suite *RepositorySuite) SetupTest() {
	var (
		db              *sql.DB
		err             error
		observedZapCore zapcore.Core
	)

	observedZapCore, suite.observedLogs = observer.New(zap.InfoLevel)
	observedLogger := zap.New(observedZapCore)

	db, suite.mock, err = sqlmock.New()
	suite.Require().NoError(err)

	gormLogger := zapgorm2.New(observedLogger)
	gormLogger.SetAsDefault()

	suite.DB, err = gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{Logger: gormLogger})
	suite.Require().NoError(err)

	suite.users = repository.NewUserRepository(suite.DB)
	suite.cocktails = repository.NewCocktailRepository(suite.DB)
	suite.ingredients = repository.NewIngredientRepo(suite.DB)
	suite.reviews = repository.NewReviewRepository(suite.DB)
}

func (suite *RepositorySuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

const upsertIngredientSQL = `INSERT INTO "ingredients" ("name") VALUES ($1) ON CONFLICT ("name") DO UPDATE SET "name"="excluded"."name" RETURNING "id"`

func (suite *RepositorySuite) TestFindOrCreateIngredientIsSingleUpsert() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(upsertIngredientSQL)).
		WithArgs("Rum").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	suite.mock.ExpectCommit()

	ingredient, err := suite.ingredients.FindOrCreate(context.Background(), "Rum")

	suite.Require().NoError(err)
	suite.Equal(int64(3), ingredient.ID)
	suite.Equal("Rum", ingredient.Name)
}

func (suite *RepositorySuite) TestListIngredientsOrderedByName() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "ingredients" ORDER BY name asc`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(2, "Mint").AddRow(1, "Rum"))

	list, err := suite.ingredients.GetAll(context.Background())

	suite.Require().NoError(err)
	suite.Len(list, 2)
	suite.Equal("Mint", list[0].Name)
}

func (suite *RepositorySuite) TestCreateCocktailWritesEverythingInOneTransaction() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "cocktails" (.+) RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	suite.mock.ExpectQuery(regexp.QuoteMeta(upsertIngredientSQL)).
		WithArgs("Rum").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	suite.mock.ExpectQuery(regexp.QuoteMeta(upsertIngredientSQL)).
		WithArgs("Mint").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	suite.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "cocktail_ingredients" ("cocktail_id","ingredient_id","amount") VALUES ($1,$2,$3),($4,$5,$6)`)).
		WithArgs(1, 10, "50ml", 1, 11, "6 leaves").
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectCommit()

	cocktail := &models.Cocktail{Name: "Mojito"}
	err := suite.cocktails.Create(context.Background(), cocktail, []repository.IngredientLine{
		{Name: "Rum", Amount: "50ml"},
		{Name: "Mint", Amount: "6 leaves"},
	})

	suite.Require().NoError(err)
	suite.Equal(int64(1), cocktail.ID)
}

func (suite *RepositorySuite) TestCreateCocktailRollsBackOnIngredientFailure() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "cocktails" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	suite.mock.ExpectQuery(`^INSERT INTO "ingredients" (.+)`).
		WillReturnError(errors.New("connection reset"))
	suite.mock.ExpectRollback()

	err := suite.cocktails.Create(context.Background(), &models.Cocktail{Name: "Mojito"}, []repository.IngredientLine{
		{Name: "Rum", Amount: "50ml"},
	})

	suite.Error(err)
}

func (suite *RepositorySuite) TestUpdateCocktailReplacesIngredients() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "cocktails" WHERE "cocktails"\."id" = \$1 (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Mojito"))
	suite.mock.ExpectExec(`^UPDATE "cocktails" SET "glass_type"=\$1,"updated_at"=\$2 WHERE (.*)"id" = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cocktail_ingredients" WHERE cocktail_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectQuery(regexp.QuoteMeta(upsertIngredientSQL)).
		WithArgs("Gin").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	suite.mock.ExpectExec(`^INSERT INTO "cocktail_ingredients"`).
		WithArgs(1, 12, "40ml").
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	glass := "Collins"
	lines := []repository.IngredientLine{{Name: "Gin", Amount: "40ml"}}
	err := suite.cocktails.Update(context.Background(), 1, repository.CocktailPatch{
		GlassType:   &glass,
		Ingredients: &lines,
	})

	suite.NoError(err)
}

func (suite *RepositorySuite) TestUpdateCocktailEmptyListClears() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "cocktails"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "Mojito"))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cocktail_ingredients" WHERE cocktail_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectCommit()

	empty := []repository.IngredientLine{}
	err := suite.cocktails.Update(context.Background(), 1, repository.CocktailPatch{Ingredients: &empty})

	suite.NoError(err)
}

func (suite *RepositorySuite) TestUpdateMissingCocktail() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "cocktails"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	suite.mock.ExpectRollback()

	name := "X"
	err := suite.cocktails.Update(context.Background(), 404, repository.CocktailPatch{Name: &name})

	suite.True(repository.IsNotFound(err))
}

func (suite *RepositorySuite) TestDeleteCocktailCascadeOrder() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT "id" FROM "cocktails" WHERE "cocktails"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE cocktail_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 3))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cocktail_ingredients" WHERE cocktail_id = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 2))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "cocktails" WHERE "cocktails"."id" = $1`)).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.cocktails.DeleteCascade(context.Background(), 1))
}

func (suite *RepositorySuite) TestDeleteCocktailCascadeRollsBack() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT "id" FROM "cocktails"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	suite.mock.ExpectExec(`^DELETE FROM "reviews"`).
		WillReturnResult(sqlmock.NewResult(0, 3))
	suite.mock.ExpectExec(`^DELETE FROM "cocktail_ingredients"`).
		WillReturnError(errors.New("lock timeout"))
	suite.mock.ExpectRollback()

	err := suite.cocktails.DeleteCascade(context.Background(), 1)

	suite.Error(err)
	suite.False(repository.IsNotFound(err))
}

func (suite *RepositorySuite) TestDeleteMissingCocktail() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT "id" FROM "cocktails"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	suite.mock.ExpectRollback()

	err := suite.cocktails.DeleteCascade(context.Background(), 404)

	suite.True(repository.IsNotFound(err))
}

func (suite *RepositorySuite) TestDeleteUserCascadeOrder() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT "id" FROM "users" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE user_id = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 4))
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE "users"."id" = $1`)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	suite.mock.ExpectCommit()

	suite.NoError(suite.users.DeleteCascade(context.Background(), 5))
}

func (suite *RepositorySuite) TestUpdateUserRejectsTakenUsername() {
	now := time.Now()
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "users" WHERE id = \$1 (.+) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(2, "bob", "b@x.com", "hash", now, now))
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE username = $1 AND id <> $2`)).
		WithArgs("alice", 2).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectRollback()

	alice := "alice"
	_, err := suite.users.Update(context.Background(), 2, repository.UserPatch{Username: &alice})

	suite.ErrorIs(err, repository.ErrDuplicate)
	var ce *repository.ConstraintError
	suite.Require().ErrorAs(err, &ce)
	suite.Equal(repository.ConstraintUsername, ce.Constraint)
}

func (suite *RepositorySuite) TestUpdateUserSameUsernameIsNoop() {
	now := time.Now()
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "created_at", "updated_at"}).
			AddRow(2, "bob", "b@x.com", "hash", now, now))
	suite.mock.ExpectCommit()

	bob := "bob"
	user, err := suite.users.Update(context.Background(), 2, repository.UserPatch{Username: &bob})

	suite.Require().NoError(err)
	suite.Equal("bob", user.Username)
}

func (suite *RepositorySuite) TestCreateUserTranslatesUniqueViolation() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "users"`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: repository.ConstraintEmail})
	suite.mock.ExpectRollback()

	err := suite.users.Create(context.Background(), &models.User{Username: "alice", Email: "a@x.com", Password: "h"})

	suite.ErrorIs(err, repository.ErrDuplicate)
	var ce *repository.ConstraintError
	suite.Require().ErrorAs(err, &ce)
	suite.Equal(repository.ConstraintEmail, ce.Constraint)
}

func (suite *RepositorySuite) TestCreateReviewTranslatesForeignKeyViolation() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(`^INSERT INTO "reviews"`).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "reviews_cocktail_id_fkey"})
	suite.mock.ExpectRollback()

	err := suite.reviews.Create(context.Background(), &models.Review{Content: "Great", Rating: 5, UserID: 1, CocktailID: 999})

	suite.ErrorIs(err, repository.ErrForeignKey)
}

func (suite *RepositorySuite) TestDeleteMissingReview() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "reviews" WHERE "reviews"."id" = $1`)).
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))
	suite.mock.ExpectCommit()

	err := suite.reviews.Delete(context.Background(), 9)

	suite.True(repository.IsNotFound(err))
}
