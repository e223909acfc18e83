package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/match --output domain/match --outpkg matchmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name MappingRepository --dir ../domain/team --output domain/team --outpkg teammock --filename mapping_repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Provider --dir ../domain/scorefeed --output domain/scorefeed --outpkg scorefeedmock --filename provider_mock.go
