package main

import (
	"context"
	"log"
	"os"

	"campus-assistant-be/internal/constant"
	"campus-assistant-be/internal/entity"
	"campus-assistant-be/internal/model"
	"campus-assistant-be/internal/repository/implementation"
	"campus-assistant-be/pkg/database"
	"campus-assistant-be/pkg/embedding"
	"campus-assistant-be/pkg/utils"

	"github.com/joho/godotenv"
)

const (
	chunkSize    = 1000
	chunkOverlap = 100
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	log.Println("Step 2: Running AutoMigrate...")

	if err := db.AutoMigrate(
		&model.Department{},
		&model.KnowledgeItem{},
		&model.KnowledgeEmbedding{},
	); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	ctx := context.Background()

	log.Println("Step 3: Seeding Departments...")

	deptRepo := implementation.NewDepartmentRepository(db)
	for _, dept := range departments() {
		if err := deptRepo.Upsert(ctx, dept); err != nil {
			log.Fatalf("Error: Failed to upsert department %s: %v", dept.Code, err)
		}
	}

	log.Println("Step 4: Seeding Knowledge Items with Embeddings...")

	baseURL := os.Getenv("OLLAMA_BASE_URL")
	embeddingModel := os.Getenv("OLLAMA_EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = "nomic-embed-text"
	}
	provider := embedding.NewOllamaProvider(baseURL, embeddingModel)

	itemRepo := implementation.NewKnowledgeItemRepository(db)
	embeddingRepo := implementation.NewKnowledgeEmbeddingRepository(db)

	for _, item := range knowledgeItems() {
		if err := itemRepo.Create(ctx, item); err != nil {
			log.Fatalf("Error: Failed to create knowledge item %q: %v", item.Title, err)
		}

		document := item.Title + "\n\n" + item.Content
		chunks := utils.SplitText(document, chunkSize, chunkOverlap)
		for idx, chunk := range chunks {
			res, err := provider.Generate(chunk, "RETRIEVAL_DOCUMENT")
			if err != nil {
				log.Fatalf("Error: Failed to embed %q chunk %d: %v", item.Title, idx, err)
			}

			if err := embeddingRepo.Create(ctx, &entity.KnowledgeEmbedding{
				Document:        chunk,
				KnowledgeItemId: item.Id,
				ChunkIndex:      idx,
			}, res.Embedding.Values); err != nil {
				log.Fatalf("Error: Failed to store embedding for %q chunk %d: %v", item.Title, idx, err)
			}
		}

		log.Printf("Seeded: %s [%s] (%d chunks)", item.Title, item.Category, len(chunks))
	}

	log.Println("✅ Success: Knowledge base seeded.")
}

func departments() []*entity.Department {
	return []*entity.Department{
		{
			Code:      constant.DepartmentCodeSA,
			Name:      "Secretaría Académica",
			Phone:     "311-211-8800",
			Extension: constant.ExtensionSA,
			Email:     "academica@uan.edu.mx",
		},
		{
			Code:      constant.DepartmentCodeDGS,
			Name:      "Dirección General de Sistemas",
			Phone:     "311-211-8800",
			Extension: constant.ExtensionDGS,
			Email:     "sistemas@uan.edu.mx",
		},
		{
			Code:  constant.DepartmentCodeSecretariaGeneral,
			Name:  "Secretaría General",
			Phone: "311-211-8800",
			Email: "secretaria.general@uan.edu.mx",
		},
		{
			Code:  constant.DepartmentCodeGeneral,
			Name:  "Atención General",
			Phone: "311-211-8800",
			Email: "contacto@uan.edu.mx",
		},
	}
}

func knowledgeItems() []*entity.KnowledgeItem {
	allUsers := []string{constant.UserTypeStudent, constant.UserTypeEmployee, constant.UserTypePublic}
	students := []string{constant.UserTypeStudent}

	return []*entity.KnowledgeItem{
		{
			Title: "Proceso de inscripción y reinscripción",
			Content: "Para inscribirte necesitas: acta de nacimiento, certificado de bachillerato, " +
				"CURP y comprobante de pago. El trámite se realiza en Secretaría Académica " +
				"(extensión 8530) en horario de 9:00 a 15:00 horas. La reinscripción se hace " +
				"en línea a través del portal de servicios escolares.",
			Category:       "tramite_especifico",
			DepartmentCode: constant.DepartmentCodeSA,
			UserTypes:      students,
			Keywords:       []string{"inscripción", "reinscripción", "trámite", "requisitos"},
			IsActive:       true,
		},
		{
			Title: "Solicitud de constancias y certificados",
			Content: "Las constancias de estudios se solicitan en ventanilla de Secretaría Académica " +
				"o por el portal. Requisitos: número de matrícula y pago de derechos. " +
				"Entrega en 3 días hábiles. Los certificados totales requieren revisión de " +
				"expediente y tardan de 10 a 15 días hábiles.",
			Category:       "tramite_especifico",
			DepartmentCode: constant.DepartmentCodeSA,
			UserTypes:      allUsers,
			Keywords:       []string{"constancia", "certificado", "documentos", "trámite"},
			IsActive:       true,
		},
		{
			Title: "Oferta educativa y carreras",
			Content: "La universidad ofrece más de 40 programas de licenciatura en las áreas de " +
				"ciencias de la salud, ciencias sociales, ingenierías y humanidades. " +
				"El proceso de admisión abre en febrero. Informes en la Secretaría Académica, " +
				"extensión 8530, o en el sitio web institucional.",
			Category:       "informacion_carrera",
			DepartmentCode: constant.DepartmentCodeSA,
			UserTypes:      allUsers,
			Keywords:       []string{"carrera", "licenciatura", "admisión", "oferta educativa"},
			IsActive:       true,
		},
		{
			Title: "Soporte de plataforma y correo institucional",
			Content: "Si no puedes acceder a la plataforma o al correo institucional, comunícate a la " +
				"Dirección General de Sistemas, extensión 8540, o envía un correo a " +
				"sistemas@uan.edu.mx con tu matrícula. El restablecimiento de contraseña " +
				"se resuelve el mismo día hábil.",
			Category:       "soporte_tecnico",
			DepartmentCode: constant.DepartmentCodeDGS,
			UserTypes:      allUsers,
			Keywords:       []string{"plataforma", "correo", "contraseña", "sistema", "acceso"},
			IsActive:       true,
		},
		{
			Title: "Servicios de biblioteca",
			Content: "La biblioteca central abre de lunes a viernes de 8:00 a 20:00 horas y sábados " +
				"de 9:00 a 14:00. El préstamo a domicilio requiere credencial vigente. " +
				"Consulta el catálogo en línea o llama a la extensión 8600.",
			Category:       "servicios",
			DepartmentCode: constant.DepartmentCodeGeneral,
			UserTypes:      allUsers,
			Keywords:       []string{"biblioteca", "préstamo", "horario", "servicios"},
			IsActive:       true,
		},
		{
			Title: "Becas y apoyos estudiantiles",
			Content: "Las convocatorias de becas se publican cada semestre. Tipos: beca académica, " +
				"beca alimenticia y beca de transporte. Requisitos generales: promedio mínimo " +
				"de 8.0 y estudio socioeconómico. Informes en Secretaría Académica, extensión 8530.",
			Category:       "informacion_carrera",
			DepartmentCode: constant.DepartmentCodeSA,
			UserTypes:      students,
			Keywords:       []string{"beca", "apoyo", "convocatoria", "promedio"},
			IsActive:       true,
		},
	}
}
