package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"campus-assistant-be/internal/constant"
	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/repository/implementation"
	"campus-assistant-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	ctx := context.Background()
	itemRepo := implementation.NewKnowledgeItemRepository(gormDB)
	embeddingRepo := implementation.NewKnowledgeEmbeddingRepository(gormDB)
	deptRepo := implementation.NewDepartmentRepository(gormDB)

	t.Run("Check Knowledge Item Repository", func(t *testing.T) {
		count, err := itemRepo.Count(ctx)
		assert.NoError(t, err)
		t.Logf("KnowledgeItem count: %d", count)
	})

	t.Run("Create And Find Item With Audience Scope", func(t *testing.T) {
		item := &entity.KnowledgeItem{
			Title:          "Integration Test Item " + uuid.NewString(),
			Content:        "Contenido de prueba para validar el filtrado por tipo de usuario en jsonb.",
			Category:       "servicios",
			DepartmentCode: constant.DepartmentCodeGeneral,
			UserTypes:      []string{constant.UserTypeStudent},
			Keywords:       []string{"prueba"},
			IsActive:       true,
		}
		require.NoError(t, itemRepo.Create(ctx, item))
		require.NotEqual(t, uuid.Nil, item.Id)

		found, err := itemRepo.FindById(ctx, item.Id)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, item.Title, found.Title)

		// Visible to its audience, invisible outside it.
		students, err := itemRepo.FindByCategory(ctx, "servicios", constant.UserTypeStudent)
		require.NoError(t, err)
		assert.NotEmpty(t, students)

		public, err := itemRepo.FindByCategory(ctx, "servicios", constant.UserTypePublic)
		require.NoError(t, err)
		for _, p := range public {
			assert.NotEqual(t, item.Id, p.Id)
		}
	})

	t.Run("Store And Search Embedding", func(t *testing.T) {
		item := &entity.KnowledgeItem{
			Title:          "Embedding Test Item " + uuid.NewString(),
			Content:        "Contenido de prueba para búsqueda vectorial con pgvector.",
			Category:       "servicios",
			DepartmentCode: constant.DepartmentCodeGeneral,
			UserTypes:      []string{constant.UserTypeStudent},
			IsActive:       true,
		}
		require.NoError(t, itemRepo.Create(ctx, item))

		vector := make([]float32, 768)
		vector[0] = 1.0
		require.NoError(t, embeddingRepo.Create(ctx, &entity.KnowledgeEmbedding{
			Document:        item.Content,
			KnowledgeItemId: item.Id,
			ChunkIndex:      0,
		}, vector))

		results, err := embeddingRepo.SearchSimilarWithScore(ctx, vector, 5, constant.UserTypeStudent, "", 0.9)
		require.NoError(t, err)
		assert.NotEmpty(t, results)

		require.NoError(t, embeddingRepo.DeleteByKnowledgeItemId(ctx, item.Id))
	})

	t.Run("Upsert Department", func(t *testing.T) {
		dept := &entity.Department{
			Code:  constant.DepartmentCodeGeneral,
			Name:  "Atención General",
			Phone: "311-211-8800",
			Email: "contacto@uan.edu.mx",
		}
		require.NoError(t, deptRepo.Upsert(ctx, dept))

		found, err := deptRepo.FindByCode(ctx, constant.DepartmentCodeGeneral)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Atención General", found.Name)
	})
}
