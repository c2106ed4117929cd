// @title HanjaEdu 백엔드 API
// @version 1.0
// @description 한자 학습 플랫폼의 백엔드 서버입니다.
// @termsOfService http://swagger.io/terms/

// @contact.name API지원
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"hanja_edu_backend/internal/app"
	"hanja_edu_backend/internal/config"
	"hanja_edu_backend/pkg/configwatcher"
	"hanja_edu_backend/pkg/logger"
)

func main() {
	// 커맨드라인 플래그
	migrateOnly := flag.Bool("migrate-only", false, "데이터베이스 마이그레이션만 실행하고 종료")
	migrate := flag.Bool("migrate", false, "release 모드에서도 시작 시 마이그레이션을 강제 실행")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	// 마이그레이션 완료 후 바로 종료
	if *migrateOnly {
		log.Println("데이터베이스 마이그레이션 완료, 프로그램을 종료합니다")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", application.OnConfigReload)

	application.Run()
}
