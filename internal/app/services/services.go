// Package services contains the enrollment domain logic.
//
// Services defined in this package:
//   - ProvisioningService: role resolution and atomic account + owner
//     record creation
//   - AuthService: signup pre-checks, login and refresh token rotation
//   - EnrollmentService: contracts, semester progression and grades
//   - PreferenceService: optional-course preference ranking
//   - CatalogService: specialization and course reads with optional caching
//   - TeacherService: courses taught by a teacher
package services
