package usecase

// RecentWindow re-exports recentWindow for tests in package usecase_test.
const RecentWindow = recentWindow
